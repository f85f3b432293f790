// Package diagnostics probes the operating system's filesystem permission
// model and reports why a cache file read might be failing, separate from
// the actual cache-parsing logic in the cache package.
package diagnostics

import (
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
)

// FullDiskAccessProbe is the result of probe_full_disk_access.
type FullDiskAccessProbe struct {
	HasAccess  bool
	ErrorCode  int
	ErrorMsg   string
	BinaryPath string
}

// ProbeFullDiskAccess attempts to open the macOS TCC database, the
// Apple-documented way to detect whether this process holds Full Disk
// Access. On every other OS there is no such gate, so access is reported
// as granted unconditionally.
func ProbeFullDiskAccess() FullDiskAccessProbe {
	binaryPath := binaryPath()

	if !isDarwin {
		return FullDiskAccessProbe{HasAccess: true, BinaryPath: binaryPath}
	}

	f, err := os.Open(tccDatabasePath)
	if err == nil {
		f.Close()
		return FullDiskAccessProbe{HasAccess: true, BinaryPath: binaryPath}
	}

	code, denial := errnoOf(err)
	log.Printf("[diagnostics] FDA probe open(%s) failed: %v (errno=%d tcc_denial=%v binary=%s)",
		tccDatabasePath, err, code, denial, binaryPath)

	return FullDiskAccessProbe{
		HasAccess:  false,
		ErrorCode:  code,
		ErrorMsg:   err.Error(),
		BinaryPath: binaryPath,
	}
}

const tccDatabasePath = "/Library/Application Support/com.apple.TCC/TCC.db"

// FileReadAttempt is one probe's outcome within TestPathAccess.
type FileReadAttempt struct {
	Tested     bool
	Success    bool
	ErrorCode  int
	ErrorMsg   string
	TestedFile string
}

// PathAccessReport is the result of test_path_access.
type PathAccessReport struct {
	Path         string
	CanListDir   bool
	FileReadTest FileReadAttempt
	BinaryPath   string
}

// TestPathAccess checks whether this process can list dir and then
// actually open+read one file inside it, which is enough to trigger a
// macOS TCC prompt/denial that a bare stat would not.
func TestPathAccess(path string) PathAccessReport {
	report := PathAccessReport{Path: path, BinaryPath: binaryPath()}

	entries, err := os.ReadDir(path)
	report.CanListDir = err == nil
	if err != nil {
		return report
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		filePath := filepath.Join(path, e.Name())
		report.FileReadTest = attemptRead(filePath)
		break
	}
	return report
}

func attemptRead(filePath string) FileReadAttempt {
	f, err := os.Open(filePath)
	if err != nil {
		code, _ := errnoOf(err)
		return FileReadAttempt{Tested: true, Success: false, ErrorCode: code, ErrorMsg: err.Error(), TestedFile: filePath}
	}
	defer f.Close()

	var buf [1]byte
	if _, err := f.Read(buf[:]); err != nil && err != io.EOF {
		code, _ := errnoOf(err)
		return FileReadAttempt{Tested: true, Success: false, ErrorCode: code, ErrorMsg: err.Error(), TestedFile: filePath}
	}
	return FileReadAttempt{Tested: true, Success: true, TestedFile: filePath}
}

// GetAppBinaryPath returns the path of the currently running executable,
// shown to the user so they know which binary to grant Full Disk Access
// to in System Settings.
func GetAppBinaryPath() (string, error) {
	return os.Executable()
}

func binaryPath() string {
	p, err := os.Executable()
	if err != nil {
		return "unknown"
	}
	return p
}

// ReadStrategyResult captures one read strategy's outcome within
// DiagnoseFileRead.
type ReadStrategyResult struct {
	OK        bool
	BytesRead int
	First8Hex string
	Error     string
	ErrorCode int
}

// FileReadDiagnosis is the result of diagnose_file_read: it runs several
// independent read strategies against the same path so a caller can tell
// which one fails, which is how a lock held only against mmap-style reads
// (common with _s sparse files on some macOS configurations) gets
// distinguished from an outright permission denial.
type FileReadDiagnosis struct {
	Stat             ReadStrategyResult
	FullRead         ReadStrategyResult
	StreamingRead    ReadStrategyResult
	SeekAndSmallRead ReadStrategyResult
	CopyThenRead     ReadStrategyResult
	ProcessID        int
	ProcessExe       string
}

// DiagnoseFileRead runs the full read-strategy battery against path.
func DiagnoseFileRead(path string) FileReadDiagnosis {
	var d FileReadDiagnosis

	if info, err := os.Stat(path); err != nil {
		code, _ := errnoOf(err)
		d.Stat = ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	} else {
		d.Stat = ReadStrategyResult{OK: true, BytesRead: int(info.Size())}
	}

	if data, err := os.ReadFile(path); err != nil {
		code, _ := errnoOf(err)
		d.FullRead = ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	} else {
		d.FullRead = ReadStrategyResult{OK: true, BytesRead: len(data), First8Hex: hexPrefix(data)}
	}

	d.StreamingRead = streamingRead(path)
	d.SeekAndSmallRead = seekAndSmallRead(path)
	d.CopyThenRead = copyThenRead(path)

	d.ProcessID = os.Getpid()
	d.ProcessExe = binaryPath()

	return d
}

func streamingRead(path string) ReadStrategyResult {
	f, err := os.Open(path)
	if err != nil {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}
	return ReadStrategyResult{OK: true, BytesRead: len(data)}
}

func seekAndSmallRead(path string) ReadStrategyResult {
	f, err := os.Open(path)
	if err != nil {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}
	defer f.Close()

	buf := make([]byte, 64)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}
	return ReadStrategyResult{OK: true, BytesRead: n, First8Hex: hexPrefix(buf[:n])}
}

func copyThenRead(path string) ReadStrategyResult {
	tmp := filepath.Join(os.TempDir(), "cachesalvage_diag_test")
	defer os.Remove(tmp)

	src, err := os.Open(path)
	if err != nil {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}
	defer src.Close()

	dst, err := os.Create(tmp)
	if err != nil {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}
	n, err := io.Copy(dst, src)
	dst.Close()
	if err != nil {
		code, _ := errnoOf(err)
		return ReadStrategyResult{OK: false, Error: err.Error(), ErrorCode: code}
	}

	_, readErr := os.ReadFile(tmp)
	return ReadStrategyResult{OK: true, BytesRead: int(n), Error: errString(readErr)}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func hexPrefix(data []byte) string {
	n := len(data)
	if n > 8 {
		n = 8
	}
	return hex.EncodeToString(data[:n])
}
