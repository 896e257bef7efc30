// Package botfilter identifies and removes adversarial or bot-like
// users using explainable rules.
package botfilter

import (
	"math"
	"regexp"
	"strings"

	"github.com/skillgenome/genome/internal/types"
)

// Default thresholds for bot detection.
const (
	DefaultPostsPerDayThreshold   = 40.0
	DefaultDuplicateTextThreshold = 0.75

	botTrustScore   = 0.2
	cleanTrustScore = 1.0
)

// Options holds the bot detection thresholds.
type Options struct {
	// PostsPerDayThreshold flags users averaging more posts per active
	// day than this.
	PostsPerDayThreshold float64
	// DuplicateTextThreshold flags users whose duplicate-text ratio
	// exceeds this.
	DuplicateTextThreshold float64
}

// DefaultOptions returns the default detection thresholds.
func DefaultOptions() Options {
	return Options{
		PostsPerDayThreshold:   DefaultPostsPerDayThreshold,
		DuplicateTextThreshold: DefaultDuplicateTextThreshold,
	}
}

// UserSignals holds the per-user metrics the rules are computed from.
type UserSignals struct {
	UserID             string  `json:"user_id"`
	TotalPosts         int     `json:"total_posts"`
	ActiveDays         int     `json:"active_days"`
	PostsPerDay        float64 `json:"posts_per_day"`
	DuplicateTextRatio float64 `json:"duplicate_text_ratio"`
	IsBot              bool    `json:"is_bot"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeText lowercases, trims, and collapses repeated whitespace
// so near-identical spam texts compare equal.
func normalizeText(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(s)), " ")
}

// ComputeSignals derives the per-user detection metrics:
//
//  1. posts_per_day = total_posts / max(active_days, 1), where an
//     active day is a distinct UTC calendar day with at least one post.
//  2. duplicate_text_ratio = 1 - unique_texts / total_posts, with
//     texts normalized before comparison.
func ComputeSignals(ds *types.Dataset, opts Options) map[string]*UserSignals {
	type userAgg struct {
		posts int
		days  map[string]struct{}
		texts map[string]struct{}
	}

	aggs := make(map[string]*userAgg)
	for _, r := range ds.Records {
		agg, ok := aggs[r.UserID]
		if !ok {
			agg = &userAgg{
				days:  make(map[string]struct{}),
				texts: make(map[string]struct{}),
			}
			aggs[r.UserID] = agg
		}
		agg.posts++
		agg.days[r.Timestamp.UTC().Format("2006-01-02")] = struct{}{}
		agg.texts[normalizeText(r.RawText)] = struct{}{}
	}

	signals := make(map[string]*UserSignals, len(aggs))
	for userID, agg := range aggs {
		activeDays := len(agg.days)
		if activeDays < 1 {
			activeDays = 1
		}
		postsPerDay := float64(agg.posts) / float64(activeDays)
		dupRatio := 1.0 - float64(len(agg.texts))/float64(agg.posts)

		signals[userID] = &UserSignals{
			UserID:             userID,
			TotalPosts:         agg.posts,
			ActiveDays:         activeDays,
			PostsPerDay:        postsPerDay,
			DuplicateTextRatio: dupRatio,
			IsBot:              postsPerDay > opts.PostsPerDayThreshold || dupRatio > opts.DuplicateTextThreshold,
		}
	}
	return signals
}

// Apply detects bot-like users, annotates every record with its user's
// signals and trust score, and returns the cleaned dataset (bot rows
// removed) plus user-level stats.
func Apply(ds *types.Dataset, opts Options) (*types.Dataset, *types.FilterStats) {
	signals := ComputeSignals(ds, opts)

	cleaned := make([]types.Record, 0, ds.Len())
	for _, r := range ds.Records {
		sig := signals[r.UserID]
		r.PostsPerDay = sig.PostsPerDay
		r.DuplicateTextRatio = sig.DuplicateTextRatio
		r.IsBot = sig.IsBot
		if sig.IsBot {
			r.TrustScore = botTrustScore
			continue
		}
		r.TrustScore = cleanTrustScore
		cleaned = append(cleaned, r)
	}

	totalUsers := len(signals)
	botsDetected := 0
	for _, sig := range signals {
		if sig.IsBot {
			botsDetected++
		}
	}

	percentRemoved := 0.0
	if totalUsers > 0 {
		percentRemoved = 100.0 * float64(botsDetected) / float64(totalUsers)
	}

	stats := &types.FilterStats{
		TotalUsers:     totalUsers,
		BotsDetected:   botsDetected,
		PercentRemoved: math.Round(percentRemoved*100) / 100,
	}

	return types.NewDataset(cleaned), stats
}
