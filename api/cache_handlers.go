package api

import (
	"io"
	"net/http"
	"os"
	"strconv"

	"cachesalvage/cache"
	"cachesalvage/discovery"
)

func (s *Server) handleEnumerateDefaultPaths(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, discovery.EnumerateDefaultPaths())
}

func (s *Server) handleValidatePath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	result, err := discovery.ValidatePath(path)
	if err != nil {
		writeReadError(w, "validate_path", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListCacheFiles(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		http.Error(w, "dir is required", http.StatusBadRequest)
		return
	}
	files, err := discovery.ListCacheFiles(dir)
	if err != nil {
		writeReadError(w, "list_cache_files", err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleReadHeader(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	if path == "" || n <= 0 {
		http.Error(w, "path and n are required", http.StatusBadRequest)
		return
	}
	data, err := cache.ReadHeader(path, n)
	if err != nil {
		writeReadError(w, "read_header", err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

func (s *Server) handleReadBody(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	data, err := cache.ReadBody(path)
	if err != nil {
		writeReadError(w, "read_body", err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

func (s *Server) handleReadContentType(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	ct, err := cache.ReadContentType(path)
	if err != nil {
		writeReadError(w, "read_content_type", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content_type": ct})
}

func (s *Server) handleReadSparse(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	raw, err := cache.ReadWithLockRetry(path)
	if err != nil {
		writeReadError(w, "read_sparse", err)
		return
	}
	body, err := cache.Reassemble(raw)
	if err != nil {
		writeReadError(w, "read_sparse", err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(body)
}

func (s *Server) handleSparsePrefix(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	if path == "" || n <= 0 {
		http.Error(w, "path and n are required", http.StatusBadRequest)
		return
	}
	raw, err := cache.ReadWithLockRetry(path)
	if err != nil {
		writeReadError(w, "sparse_prefix", err)
		return
	}
	prefix, err := cache.Prefix(raw, n)
	if err != nil {
		writeReadError(w, "sparse_prefix", err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(prefix)
}

func (s *Server) handleSparseTotalSize(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	raw, err := cache.ReadWithLockRetry(path)
	if err != nil {
		writeReadError(w, "sparse_total_size", err)
		return
	}
	size, err := cache.TotalSize(raw)
	if err != nil {
		writeReadError(w, "sparse_total_size", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"total_size": size})
}

type copyEntryRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

func (s *Server) handleCopyEntry(w http.ResponseWriter, r *http.Request) {
	var req copyEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := copyFile(req.Src, req.Dst)
	if err != nil {
		writeReadError(w, "copy_entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"bytes_copied": n})
}

type concatEntriesRequest struct {
	Paths  []string `json:"paths"`
	Output string   `json:"output"`
}

func (s *Server) handleConcatEntries(w http.ResponseWriter, r *http.Request) {
	var req concatEntriesRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := concatFiles(req.Paths, req.Output)
	if err != nil {
		writeReadError(w, "concat_entries", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"bytes_written": n})
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	return io.Copy(out, in)
}

func concatFiles(paths []string, output string) (int64, error) {
	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	var total int64
	for _, p := range paths {
		in, err := os.Open(p)
		if err != nil {
			return total, err
		}
		n, err := io.Copy(out, in)
		in.Close()
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
