// Package riskzone flags regions whose dominant skills are trending
// down, combining regional skill support with per-skill forecasts.
package riskzone

import (
	"sort"

	"github.com/skillgenome/genome/internal/forecast"
	"github.com/skillgenome/genome/internal/types"
)

// DefaultMinSkillSupport is the minimum number of regional records
// mentioning a skill before it counts toward risk scoring. Skills below
// this support are too thin to trend meaningfully.
const DefaultMinSkillSupport = 10

// Risk level cutoffs on the declining-skill fraction.
const (
	highRiskScore   = 0.5
	mediumRiskScore = 0.25
)

// Options configures risk zone detection.
type Options struct {
	// MinSkillSupport is the regional record support a skill needs to
	// participate in scoring.
	MinSkillSupport int
}

// DefaultOptions returns the default detection parameters.
func DefaultOptions() Options {
	return Options{MinSkillSupport: DefaultMinSkillSupport}
}

// Detect scores every region with at least one qualifying skill. Each
// qualifying skill's trend is computed from the region's own records;
// the risk score is the fraction of qualifying skills in decline.
// Results are sorted by score descending, then region.
func Detect(ds *types.Dataset, opts Options) []types.RiskZone {
	if ds == nil || ds.Len() == 0 {
		return []types.RiskZone{}
	}
	if opts.MinSkillSupport < 1 {
		opts.MinSkillSupport = DefaultMinSkillSupport
	}

	zones := []types.RiskZone{}
	for _, region := range ds.Regions() {
		regional := ds.FilterRegion(region)

		var qualifying []string
		for skill, support := range regional.SkillFrequencies() {
			if support >= opts.MinSkillSupport {
				qualifying = append(qualifying, skill)
			}
		}
		if len(qualifying) == 0 {
			continue
		}
		sort.Strings(qualifying)

		zone := types.RiskZone{
			Region:          region,
			DecliningSkills: []string{},
			RisingSkills:    []string{},
			StableSkills:    []string{},
		}
		for _, skill := range qualifying {
			result := forecast.Skill(regional, skill, 1)
			switch result.Trend {
			case types.TrendDeclining:
				zone.DecliningSkills = append(zone.DecliningSkills, skill)
			case types.TrendRising:
				zone.RisingSkills = append(zone.RisingSkills, skill)
			default:
				zone.StableSkills = append(zone.StableSkills, skill)
			}
		}

		zone.RiskScore = float64(len(zone.DecliningSkills)) / float64(len(qualifying))
		zone.Level = classifyLevel(zone.RiskScore)
		zones = append(zones, zone)
	}

	sort.Slice(zones, func(i, j int) bool {
		if zones[i].RiskScore != zones[j].RiskScore {
			return zones[i].RiskScore > zones[j].RiskScore
		}
		return zones[i].Region < zones[j].Region
	})
	return zones
}

func classifyLevel(score float64) string {
	switch {
	case score >= highRiskScore:
		return types.RiskHigh
	case score >= mediumRiskScore:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}
