// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/skillgenome/genome/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOverview outputs the dataset summary.
func (p *Printer) PrintOverview(overview *types.OverviewStats) {
	if overview == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records:  %d\n", overview.TotalRecords))
	sb.WriteString(fmt.Sprintf("Users:    %d\n", overview.TotalUsers))
	sb.WriteString(fmt.Sprintf("Regions:  %d\n", overview.TotalRegions))
	sb.WriteString(fmt.Sprintf("Skills:   %d", overview.TotalSkills))

	p.printBox("DATASET OVERVIEW", sb.String())
}

// PrintFilterStats outputs the bot-filter result summary.
func (p *Printer) PrintFilterStats(stats *types.FilterStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Users:          %d\n", stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("Bots detected:  %d\n", stats.BotsDetected))
	sb.WriteString(fmt.Sprintf("Removed:        %.2f%%", stats.PercentRemoved))

	p.printBox("BOT FILTER", sb.String())
}

// PrintGraphSummary outputs the top skills and pairs of the skill graph.
func (p *Printer) PrintGraphSummary(summary *types.GraphSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Top skills by degree:\n")
	for i, s := range summary.TopSkills {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.TopSkills)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s (%d)\n", s.Skill, s.Degree))
	}
	sb.WriteString("Top pairs by weight:\n")
	for i, pair := range summary.TopPairs {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.TopPairs)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s + %s (%d)\n", pair.Skill1, pair.Skill2, pair.Weight))
	}

	p.printBox("SKILL GRAPH", strings.TrimRight(sb.String(), "\n"))
}

// PrintClusters outputs the region cluster assignments.
func (p *Printer) PrintClusters(clusters []types.RegionCluster) {
	if len(clusters) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range clusters {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more regions\n", len(clusters)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("%s -> cluster %d [%s]\n", c.Region, c.ClusterID, strings.Join(c.TopSkills, ", ")))
	}

	p.printBox("REGION CLUSTERS", strings.TrimRight(sb.String(), "\n"))
}

// PrintForecast outputs one skill forecast.
func (p *Printer) PrintForecast(result *types.ForecastResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skill:    %s\n", result.Skill))
	sb.WriteString(fmt.Sprintf("Trend:    %s\n", result.Trend))
	sb.WriteString(fmt.Sprintf("History:  %d weeks\n", len(result.Historical)))
	sb.WriteString(fmt.Sprintf("Forecast: %d weeks", len(result.Forecast)))

	p.printBox("FORECAST", sb.String())
}

// PrintRiskZones outputs the detected regional risk zones.
func (p *Printer) PrintRiskZones(zones []types.RiskZone) {
	var sb strings.Builder
	if len(zones) == 0 {
		sb.WriteString("No regions qualified for risk scoring")
	}
	for i, z := range zones {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more regions\n", len(zones)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("%s: %s (score %.2f, %d declining)\n",
			z.Region, z.Level, z.RiskScore, len(z.DecliningSkills)))
	}

	p.printBox("RISK ZONES", strings.TrimRight(sb.String(), "\n"))
}
