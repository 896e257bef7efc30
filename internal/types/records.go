// Package types provides type definitions for structured data used throughout the skill genome system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
	"time"
)

// Record represents a single observation of a user exercising skills,
// as ingested from a CSV export, URL, or HTML table dump.
type Record struct {
	UserID     string    `json:"user_id"`
	Region     string    `json:"region"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
	RawText    string    `json:"raw_text"`
	SkillTags  []string  `json:"skill_tags"`
	Engagement float64   `json:"engagement"`

	// Ingestion metadata
	IngestedAt    time.Time `json:"ingested_at"`
	IngestionType string    `json:"ingestion_type"`

	// Bot-filter annotations (populated by botfilter.Apply)
	PostsPerDay        float64 `json:"posts_per_day,omitempty"`
	DuplicateTextRatio float64 `json:"duplicate_text_ratio,omitempty"`
	IsBot              bool    `json:"is_bot,omitempty"`
	TrustScore         float64 `json:"trust_score,omitempty"`
}

// ParseSkillTags splits a semicolon-separated tag string into trimmed,
// non-empty tags. Order is preserved; duplicates are kept (graph and
// clustering code deduplicates where it matters).
func ParseSkillTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Dataset is an in-memory collection of records. The server holds the
// cleaned dataset in memory and computes analytics from it on demand.
type Dataset struct {
	Records []Record `json:"records"`
}

// NewDataset creates a Dataset from a slice of records.
func NewDataset(records []Record) *Dataset {
	return &Dataset{Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// UserCount returns the number of distinct users.
func (d *Dataset) UserCount() int {
	if d == nil {
		return 0
	}
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		seen[r.UserID] = struct{}{}
	}
	return len(seen)
}

// RegionCount returns the number of distinct regions.
func (d *Dataset) RegionCount() int {
	return len(d.Regions())
}

// Skills returns the distinct skill tags across all records, sorted.
func (d *Dataset) Skills() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		for _, s := range r.SkillTags {
			seen[s] = struct{}{}
		}
	}
	skills := make([]string, 0, len(seen))
	for s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// SkillCount returns the number of distinct skill tags.
func (d *Dataset) SkillCount() int {
	return len(d.Skills())
}

// Regions returns the distinct non-blank regions across all records,
// sorted.
func (d *Dataset) Regions() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		if r.Region == "" {
			continue
		}
		seen[r.Region] = struct{}{}
	}
	regions := make([]string, 0, len(seen))
	for rg := range seen {
		regions = append(regions, rg)
	}
	sort.Strings(regions)
	return regions
}

// FilterRegion returns a new Dataset containing only records from the
// given region.
func (d *Dataset) FilterRegion(region string) *Dataset {
	if d == nil {
		return NewDataset(nil)
	}
	var out []Record
	for _, r := range d.Records {
		if r.Region == region {
			out = append(out, r)
		}
	}
	return NewDataset(out)
}

// SkillFrequencies returns how many records mention each skill, with
// tags deduplicated per record.
func (d *Dataset) SkillFrequencies() map[string]int {
	freq := make(map[string]int)
	if d == nil {
		return freq
	}
	for _, r := range d.Records {
		seen := make(map[string]struct{}, len(r.SkillTags))
		for _, s := range r.SkillTags {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			freq[s]++
		}
	}
	return freq
}
