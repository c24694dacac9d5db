package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/commitgate/commitgate/internal/analysis"
	"github.com/commitgate/commitgate/internal/diff"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Evaluate ---

type evaluateRequest struct {
	Message string `json:"message"`
	Diff    string `json:"diff"`
}

type evaluateResponse struct {
	ID     string           `json:"id"`
	Report *analysis.Report `json:"report"`
	Stats  diffStatsJSON    `json:"stats"`
}

type diffStatsJSON struct {
	Files     int `json:"files"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

type fileJSON struct {
	Path      string `json:"path"`
	OldPath   string `json:"old_path,omitempty"`
	Status    string `json:"status"`
	Binary    bool   `json:"binary,omitempty"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

func fileInfo(f *diff.FileChange) fileJSON {
	return fileJSON{
		Path:      f.Path,
		OldPath:   f.OldPath,
		Status:    f.Status.String(),
		Binary:    f.IsBinary,
		Additions: f.Additions,
		Deletions: f.Deletions,
	}
}

func diffStats(ds *diff.DiffSet) diffStatsJSON {
	files, additions, deletions := ds.Stats()
	return diffStatsJSON{Files: files, Additions: additions, Deletions: deletions}
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	ds, err := diff.Parse(req.Diff)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep := analysis.Evaluate(req.Message, ds, s.cfg)
	id := uuid.NewString()
	s.log.Info("evaluated", "id", id, "files", len(ds.Files), "score", rep.OverallScore, "status", rep.Status)

	writeJSON(w, http.StatusOK, evaluateResponse{
		ID:     id,
		Report: rep,
		Stats:  diffStats(ds),
	})
}

// --- Parse ---

type parseRequest struct {
	Diff string `json:"diff"`
}

type parseResponse struct {
	Files []fileJSON    `json:"files"`
	Stats diffStatsJSON `json:"stats"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	ds, err := diff.Parse(req.Diff)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := parseResponse{Stats: diffStats(ds)}
	for _, f := range ds.Files {
		resp.Files = append(resp.Files, fileInfo(f))
	}

	writeJSON(w, http.StatusOK, resp)
}
