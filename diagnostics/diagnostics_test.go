package diagnostics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTestPathAccess_ReadsOneFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f_000001"), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	report := TestPathAccess(dir)
	if !report.CanListDir {
		t.Fatalf("expected CanListDir true")
	}
	if !report.FileReadTest.Tested || !report.FileReadTest.Success {
		t.Fatalf("expected successful read test, got %+v", report.FileReadTest)
	}
}

func TestTestPathAccess_MissingDir(t *testing.T) {
	report := TestPathAccess(filepath.Join(t.TempDir(), "does-not-exist"))
	if report.CanListDir {
		t.Fatalf("expected CanListDir false for missing directory")
	}
}

func TestDiagnoseFileRead_AllStrategiesAgree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f_000002")
	if err := os.WriteFile(path, []byte("abcdefgh"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := DiagnoseFileRead(path)
	if !d.Stat.OK || !d.FullRead.OK || !d.StreamingRead.OK || !d.SeekAndSmallRead.OK || !d.CopyThenRead.OK {
		t.Fatalf("expected all strategies to succeed on a readable file: %+v", d)
	}
	if d.FullRead.First8Hex != "6162636465666768" {
		t.Fatalf("unexpected hex prefix: %s", d.FullRead.First8Hex)
	}
}

func TestProbeFullDiskAccess_NonDarwinAlwaysGranted(t *testing.T) {
	if isDarwin {
		t.Skip("darwin-specific behavior exercised on macOS only")
	}
	probe := ProbeFullDiskAccess()
	if !probe.HasAccess {
		t.Fatalf("expected HasAccess true outside darwin")
	}
}
