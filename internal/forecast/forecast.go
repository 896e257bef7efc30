// Package forecast provides skill demand forecasting using weekly
// counts and a linear trend.
package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/skillgenome/genome/internal/types"
)

// DefaultHorizonWeeks is the default number of weeks to extrapolate.
const DefaultHorizonWeeks = 12

const weekLayout = "2006-01-02"

// Skill computes weekly historical counts for one skill and
// extrapolates a linear trend over the horizon. Weeks start Monday
// (UTC) and are labelled by their start date; weeks with no activity
// between the first and last observation count as zero.
func Skill(ds *types.Dataset, skill string, horizonWeeks int) *types.ForecastResult {
	skill = strings.TrimSpace(skill)
	result := &types.ForecastResult{
		Skill:      skill,
		Historical: []types.WeeklyCount{},
		Forecast:   []types.ForecastPoint{},
		Trend:      types.TrendStable,
	}
	if ds == nil || ds.Len() == 0 || skill == "" {
		return result
	}
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}

	weekly := weeklyCounts(ds, skill)
	if len(weekly) == 0 {
		return result
	}
	result.Historical = weekly
	if len(weekly) < 2 {
		return result
	}

	counts := make([]float64, len(weekly))
	for i, w := range weekly {
		counts[i] = float64(w.Count)
	}
	slope, intercept := linearFit(counts)
	result.Trend = classifyTrend(slope, mean(counts))

	lastWeek, _ := time.Parse(weekLayout, weekly[len(weekly)-1].Week)
	n := len(weekly)
	for i := 1; i <= horizonWeeks; i++ {
		predicted := slope*float64(n-1+i) + intercept
		predicted = math.Max(0, math.Round(predicted*10)/10)
		result.Forecast = append(result.Forecast, types.ForecastPoint{
			Week:           lastWeek.AddDate(0, 0, 7*i).Format(weekLayout),
			PredictedCount: predicted,
		})
	}
	return result
}

// weeklyCounts buckets matching records into continuous weekly bins
// from the first to the last observed week, zero-filling gaps.
func weeklyCounts(ds *types.Dataset, skill string) []types.WeeklyCount {
	buckets := make(map[string]int)
	var first, last time.Time

	for _, r := range ds.Records {
		if !hasSkill(r.SkillTags, skill) {
			continue
		}
		ws := weekStart(r.Timestamp)
		buckets[ws.Format(weekLayout)]++
		if first.IsZero() || ws.Before(first) {
			first = ws
		}
		if last.IsZero() || ws.After(last) {
			last = ws
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	var weekly []types.WeeklyCount
	for ws := first; !ws.After(last); ws = ws.AddDate(0, 0, 7) {
		key := ws.Format(weekLayout)
		weekly = append(weekly, types.WeeklyCount{Week: key, Count: buckets[key]})
	}
	return weekly
}

func hasSkill(tags []string, skill string) bool {
	for _, t := range tags {
		if t == skill {
			return true
		}
	}
	return false
}

// weekStart returns the Monday 00:00 UTC of t's week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// linearFit returns the ordinary least squares slope and intercept of
// y over x = 0, 1, ..., len(y)-1.
func linearFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, mean(y)
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// classifyTrend labels the slope relative to a threshold scaled by the
// mean weekly count, so large skills need larger absolute movement.
func classifyTrend(slope, meanCount float64) string {
	threshold := math.Max(0.1, meanCount*0.02)
	switch {
	case slope > threshold:
		return types.TrendRising
	case slope < -threshold:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

func mean(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

// TopSkills forecasts the n most frequent skills in the dataset.
func TopSkills(ds *types.Dataset, n, horizonWeeks int) []*types.ForecastResult {
	freq := ds.SkillFrequencies()

	type skillCount struct {
		skill string
		count int
	}
	entries := make([]skillCount, 0, len(freq))
	for s, c := range freq {
		entries = append(entries, skillCount{skill: s, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].skill < entries[j].skill
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	results := make([]*types.ForecastResult, len(entries))
	for i, e := range entries {
		results[i] = Skill(ds, e.skill, horizonWeeks)
	}
	return results
}
