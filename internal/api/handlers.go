package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hugo-lorenzo-mato/docgate/internal/checklist"
	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

func (s *Server) handleListChecklists(w http.ResponseWriter, _ *http.Request) {
	names, err := s.checklist.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"checklists": names})
}

func (s *Server) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cl, err := s.checklist.Load(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cl)
}

// validateRequest is the body of POST /api/v1/validate.
type validateRequest struct {
	Document  string                  `json:"document"`
	Checklist string                  `json:"checklist"`
	Mode      string                  `json:"mode"`
	Context   *core.ValidationContext `json:"context,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Checklist == "" {
		badRequest(w, "checklist is required")
		return
	}
	if req.Mode == "" {
		req.Mode = string(core.ModeStandard)
	}

	mode, err := core.ParseMode(req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}

	cl, err := s.checklist.Load(req.Checklist)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := checklist.Execute(cl, req.Document, req.Context, mode)
	if err != nil {
		writeError(w, err)
		return
	}

	if s.history != nil {
		if _, recErr := s.history.Record(r.Context(), result, mode); recErr != nil {
			s.logger.Warn("failed to record execution", "checklist", req.Checklist, "error", recErr)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListArtifacts(r.URL.Query().Get("category"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []core.ArtifactSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"artifacts": items})
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	artifact, err := s.store.LoadArtifact(rel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

// putArtifactRequest is the body of PUT /api/v1/artifacts/{path}.
type putArtifactRequest struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func (s *Server) handlePutArtifact(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")

	var req putArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	location, err := s.store.SaveArtifact(rel, req.Content, req.Metadata)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": rel, "location": location})
}

func (s *Server) handleDeleteArtifact(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	deleted := s.store.DeleteArtifact(rel)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *Server) handleGetMeta(w http.ResponseWriter, _ *http.Request) {
	meta, err := s.store.Meta()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// putPhaseRequest is the body of PUT /api/v1/phase.
type putPhaseRequest struct {
	Phase string `json:"phase"`
}

func (s *Server) handlePutPhase(w http.ResponseWriter, r *http.Request) {
	var req putPhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.store.UpdatePhase(req.Phase); err != nil {
		writeError(w, err)
		return
	}

	meta, err := s.store.Meta()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, core.ErrStorage(core.CodeHistoryUnavailable, "execution history is not enabled"))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var err error
	var entries interface{}
	if name := r.URL.Query().Get("checklist"); name != "" {
		entries, err = s.history.ForChecklist(r.Context(), name, limit)
	} else {
		entries, err = s.history.List(r.Context(), limit)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"executions": entries})
}
