package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents an analysis run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Source       string     `json:"source"`
	Status       string     `json:"status"`
	TotalRecords int        `json:"total_records"`
	BotsRemoved  int        `json:"bots_removed"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for known artifact types
const (
	StepIngestSummary  = "ingest_summary"
	StepFilterStats    = "filter_stats"
	StepOverview       = "overview"
	StepGraphSummary   = "graph_summary"
	StepRegionClusters = "region_clusters"
	StepForecasts      = "forecasts"
	StepRiskZones      = "risk_zones"
)

// Artifact categories grouping related steps
const (
	CategoryIngestion = "ingestion"
	CategoryFiltering = "filtering"
	CategoryAnalytics = "analytics"
)

// Artifact represents an artifact record
type Artifact struct {
	ID       uuid.UUID `json:"id"`
	RunID    uuid.UUID `json:"run_id"`
	Step     string    `json:"step"`
	Category string    `json:"category"`
	Content  any       `json:"content,omitempty"`
}

// ArtifactSummary is a lightweight view of an artifact for listing
type ArtifactSummary struct {
	ID        uuid.UUID `json:"id"`
	Step      string    `json:"step"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a stored analyst account, including the password hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
