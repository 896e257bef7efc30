package types

// OverviewStats is the high-level dashboard summary.
type OverviewStats struct {
	TotalRecords int `json:"total_records"`
	TotalUsers   int `json:"total_users"`
	TotalRegions int `json:"total_regions"`
	TotalSkills  int `json:"total_skills"`
}

// HeatmapEntry is one region's distinct-skill count for the dashboard heatmap.
type HeatmapEntry struct {
	Region     string `json:"region"`
	SkillCount int    `json:"skill_count"`
}

// FilterStats summarizes one bot-filter pass at the user level.
type FilterStats struct {
	TotalUsers     int     `json:"total_users"`
	BotsDetected   int     `json:"bots_detected"`
	PercentRemoved float64 `json:"percent_removed"`
}

// SkillDegree is a graph node with its degree (number of co-occurring skills).
type SkillDegree struct {
	Skill  string `json:"skill"`
	Degree int    `json:"degree"`
}

// SkillPair is a weighted co-occurrence edge between two skills.
// Skill1 < Skill2 lexicographically.
type SkillPair struct {
	Skill1 string `json:"skill_1"`
	Skill2 string `json:"skill_2"`
	Weight int    `json:"weight"`
}

// GraphSummary is the dashboard view of the skill co-occurrence graph.
type GraphSummary struct {
	TopSkills []SkillDegree `json:"top_skills"`
	TopPairs  []SkillPair   `json:"top_pairs"`
}

// RelatedSkill is one synergy neighbor of a queried skill.
type RelatedSkill struct {
	Skill  string `json:"skill"`
	Weight int    `json:"weight"`
}

// RegionCluster assigns a region to a cluster and carries that
// cluster's top skills.
type RegionCluster struct {
	Region    string   `json:"region"`
	ClusterID int      `json:"cluster_id"`
	TopSkills []string `json:"top_skills"`
}

// WeeklyCount is one historical weekly bucket in a forecast.
type WeeklyCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// ForecastPoint is one extrapolated weekly bucket.
type ForecastPoint struct {
	Week           string  `json:"week"`
	PredictedCount float64 `json:"predicted_count"`
}

// Trend labels for forecast results.
const (
	TrendRising    = "rising"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// ForecastResult holds historical weekly counts, the extrapolated
// horizon, and the overall trend label for one skill.
type ForecastResult struct {
	Skill      string          `json:"skill"`
	Historical []WeeklyCount   `json:"historical"`
	Forecast   []ForecastPoint `json:"forecast"`
	Trend      string          `json:"trend"`
}

// Risk levels for regional risk zones.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// RiskZone flags a region whose dominant skills are trending down.
type RiskZone struct {
	Region          string   `json:"region"`
	DecliningSkills []string `json:"declining_skills"`
	RisingSkills    []string `json:"rising_skills"`
	StableSkills    []string `json:"stable_skills"`
	RiskScore       float64  `json:"risk_score"`
	Level           string   `json:"level"`
}
