package server

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/skillgenome/genome/internal/clustering"
	"github.com/skillgenome/genome/internal/forecast"
	"github.com/skillgenome/genome/internal/riskzone"
	"github.com/skillgenome/genome/internal/types"
)

// handleRoot identifies the service.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Skill Genome backend is running"})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOverview returns dataset-level totals.
func (s *Server) handleOverview(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, &types.OverviewStats{
		TotalRecords: snap.dataset.Len(),
		TotalUsers:   snap.dataset.UserCount(),
		TotalRegions: snap.dataset.RegionCount(),
		TotalSkills:  snap.dataset.SkillCount(),
	})
}

// handleHeatmap returns the distinct-skill count per region, sorted by
// count descending.
func (s *Server) handleHeatmap(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	entries := []types.HeatmapEntry{}
	for _, region := range snap.dataset.Regions() {
		entries = append(entries, types.HeatmapEntry{
			Region:     region,
			SkillCount: snap.dataset.FilterRegion(region).SkillCount(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SkillCount != entries[j].SkillCount {
			return entries[i].SkillCount > entries[j].SkillCount
		}
		return entries[i].Region < entries[j].Region
	})

	s.jsonResponse(w, http.StatusOK, entries)
}

// handleBots returns the bot filter stats for the loaded dataset.
func (s *Server) handleBots(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, snap.stats)
}

// handleGraphSummary returns top skills and strongest co-occurrence pairs.
func (s *Server) handleGraphSummary(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, snap.graph.Summary())
}

// handleRelatedSkills returns the strongest co-occurrence neighbors of
// one skill.
func (s *Server) handleRelatedSkills(w http.ResponseWriter, r *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	skill := strings.TrimSpace(r.PathValue("skill"))
	if skill == "" {
		s.errorResponse(w, http.StatusBadRequest, "skill is required")
		return
	}

	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"skill":   skill,
		"related": snap.graph.Related(skill, limit),
	})
}

// handleRegionClusters groups regions by skill profile.
func (s *Server) handleRegionClusters(w http.ResponseWriter, r *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	k, err := queryInt(r, "k", s.appConfig.ClusterCount)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, clustering.ClusterRegions(snap.dataset, k))
}

// handleForecast returns the weekly trend forecast for one skill, or
// for the most frequent skills when none is given.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	horizon, err := queryInt(r, "horizon", s.appConfig.ForecastHorizonWeeks)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if skill := strings.TrimSpace(r.URL.Query().Get("skill")); skill != "" {
		s.jsonResponse(w, http.StatusOK, forecast.Skill(snap.dataset, skill, horizon))
		return
	}

	s.jsonResponse(w, http.StatusOK,
		forecast.TopSkills(snap.dataset, s.appConfig.TopSkillForecasts, horizon))
}

// handleRiskZones returns regions ranked by the fraction of their
// dominant skills in decline.
func (s *Server) handleRiskZones(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	zones := riskzone.Detect(snap.dataset, riskzone.Options{
		MinSkillSupport: s.appConfig.MinSkillSupport,
	})
	s.jsonResponse(w, http.StatusOK, zones)
}

// handleIngestRefresh re-ingests the configured dataset and swaps the
// in-memory snapshot.
func (s *Server) handleIngestRefresh(w http.ResponseWriter, r *http.Request) {
	if s.appConfig.DataPath == "" && s.appConfig.DataURL == "" {
		s.errorResponse(w, http.StatusConflict, "no data source configured")
		return
	}

	if err := s.refresh(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap, err := s.current()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"summary":      snap.summary,
		"filter_stats": snap.stats,
		"refreshed_at": snap.loadedAt,
	})
}

// queryInt parses an integer query parameter, returning the default
// when absent.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, &ErrValidation{Field: name, Message: "must be a positive integer"}
	}
	return v, nil
}
