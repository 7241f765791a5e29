package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tilegarden/tilegarden/pkg/buildinfo"
	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	"github.com/tilegarden/tilegarden/pkg/pipeline"
	"github.com/tilegarden/tilegarden/pkg/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SolveRequest is the POST /v1/solve payload.
type SolveRequest struct {
	// Input is the problem text, plain or TOML.
	Input string `json:"input"`

	// TOML marks Input as a TOML manifest.
	TOML bool `json:"toml,omitempty"`

	// NodeBudget caps the search; zero uses the server default, negative
	// disables the cap.
	NodeBudget int64 `json:"node_budget,omitempty"`

	// Format selects the artifact format. Defaults to "text".
	Format string `json:"format,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`
}

// SolveResponse is the POST /v1/solve reply.
type SolveResponse struct {
	RunID       string     `json:"run_id"`
	Outcome     string     `json:"outcome"`
	ProblemHash string     `json:"problem_hash"`
	Cached      bool       `json:"cached"`
	Stats       SolveStats `json:"stats"`
	Artifact    string     `json:"artifact"`
}

// SolveStats is the search effort section of a solve reply.
type SolveStats struct {
	Nodes      int64 `json:"nodes"`
	Backtracks int64 `json:"backtracks"`
	Prunings   int64 `json:"prunings"`
	DurationMS int64 `json:"duration_ms"`
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "input is required"))
		return
	}
	if req.Format != "" {
		if err := apperrors.ValidateFormat(req.Format); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Input:      req.Input,
		TOML:       req.TOML,
		NodeBudget: req.NodeBudget,
		Format:     req.Format,
		Refresh:    req.Refresh,
		Logger:     s.logger,
	})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	run := recordRun(result)
	if err := s.store.Put(r.Context(), run); err != nil {
		s.logger.Error("record run", "err", err)
		// The solve succeeded; losing the record is not worth a 500.
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		RunID:       run.ID.String(),
		Outcome:     result.Solve.Outcome.String(),
		ProblemHash: result.ProblemHash,
		Cached:      result.CacheInfo.SolveHit,
		Stats: SolveStats{
			Nodes:      result.Solve.Stats.Nodes,
			Backtracks: result.Solve.Stats.Backtracks,
			Prunings:   result.Solve.Stats.Prunings,
			DurationMS: result.Solve.Stats.Duration.Milliseconds(),
		},
		Artifact: string(result.Artifact),
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if err := apperrors.ValidateRunID(raw); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid run id %q", raw))
		return
	}

	run, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeRunNotFound, "run %s not found", raw))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = min(n, maxListLimit)
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// recordRun converts a pipeline result into a persisted run.
func recordRun(result *pipeline.Result) store.Run {
	run := store.Run{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		ProblemHash: result.ProblemHash,
		Outcome:     result.Solve.Outcome.String(),
		Nodes:       result.Solve.Stats.Nodes,
		Backtracks:  result.Solve.Stats.Backtracks,
		Prunings:    result.Solve.Stats.Prunings,
		Duration:    result.Solve.Stats.Duration,
	}
	if sol := result.Solve.Solution; sol != nil {
		stored := &store.StoredSolution{
			GridHeight: result.Problem.GridHeight(),
			GridWidth:  result.Problem.GridWidth(),
			Values:     make([]uint8, len(sol.Values)),
			Visible:    make(map[string]int, len(sol.Visible)),
		}
		for i, v := range sol.Values {
			stored.Values[i] = uint8(v)
		}
		for c, n := range sol.Visible {
			stored.Visible[strconv.Itoa(int(c))] = n
		}
		run.Solution = stored
	}
	return run
}

// statusForError maps structured error codes to HTTP status codes.
func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidLandscape,
		apperrors.ErrCodeInvalidInventory,
		apperrors.ErrCodeInvalidTarget,
		apperrors.ErrCodeInvalidProblem,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeRunNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}
