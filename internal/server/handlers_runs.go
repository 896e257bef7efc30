package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/skillgenome/genome/internal/db"
	"github.com/skillgenome/genome/internal/pipeline"
)

// pipelineOptions builds the pipeline configuration from the server's
// data source and thresholds.
func (s *Server) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		CSVPath:  s.appConfig.DataPath,
		URL:      s.appConfig.DataURL,
		Config:   s.appConfig,
		Database: s.db,
	}
}

// requireDB guards the persistence endpoints.
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "persistence not configured")
		return false
	}
	return true
}

// handleCreateRun executes a full persisted analysis run.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	result, err := pipeline.Run(r.Context(), s.pipelineOptions())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"run_id":       result.RunID,
		"status":       db.StatusCompleted,
		"summary":      result.Summary,
		"filter_stats": result.Stats,
	})
}

// handleRunStream executes a persisted analysis run, streaming progress
// as Server-Sent Events.
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.pipelineOptions()
	opts.Progress = func(step, category, message string) {
		sse.WriteEvent("progress", map[string]string{ //nolint:errcheck
			"step":     step,
			"category": category,
			"message":  message,
		})
	}

	result, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(result.RunID.String(), db.StatusCompleted)
}

// handleListRuns lists recent runs, optionally filtered by source
// substring and status.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, err := s.db.ListRuns(r.Context(), db.RunFilters{
		Source: r.URL.Query().Get("source"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}

	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns one run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleRunArtifacts lists the artifact summaries of one run.
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	artifacts, err := s.db.ListArtifacts(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artifacts == nil {
		artifacts = []db.ArtifactSummary{}
	}

	s.jsonResponse(w, http.StatusOK, artifacts)
}

// handleGetArtifact returns one artifact with its content.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	artifactID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	artifact, err := s.db.GetArtifactByID(r.Context(), artifactID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artifact == nil {
		s.errorResponse(w, http.StatusNotFound, "artifact not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, artifact)
}

// handleDeleteRun deletes a run and, via cascade, its artifacts.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.DeleteRun(r.Context(), runID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "run deleted"})
}

// pathUUID parses a UUID path parameter, writing a 400 on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
