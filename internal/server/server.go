// Package server exposes the report generator over HTTP: a minimal upload
// form, a CSV upload endpoint that runs the merge, and a download endpoint
// for the generated deck.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"deckmerge/internal/config"
	"deckmerge/internal/merge"
	"deckmerge/internal/state"
)

const maxUploadBytes = 32 << 20

// Server handles report generation requests. Generation mutates shared
// template state on disk, so runs are serialized.
type Server struct {
	cfg *config.Config
	obs merge.Observer

	mu sync.Mutex // one generation at a time
}

// New returns a server for the given configuration. obs may be nil.
func New(cfg *config.Config, obs merge.Observer) *Server {
	if obs == nil {
		obs = merge.NopObserver{}
	}
	return &Server{cfg: cfg, obs: obs}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /download/{name}", s.handleDownload)
	return mux
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file part")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no selected file")
		return
	}

	// Uploads get a fresh name so concurrent clients cannot clobber each
	// other's files.
	if err := state.EnsureDir(s.cfg.UploadDir); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	csvPath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+".csv")
	dst, err := os.Create(csvPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := dst.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	sum, err := merge.Generate(s.cfg, csvPath, s.obs)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "Success",
		"download_url": "/download/" + filepath.Base(sum.Output),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.PathValue("name"))
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}
	path := filepath.Join(s.cfg.OutputDir, name)
	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	io.Copy(w, f)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
