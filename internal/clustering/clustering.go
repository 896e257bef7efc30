// Package clustering groups regions by their skill frequency profiles.
package clustering

import (
	"sort"

	"github.com/skillgenome/genome/internal/types"
)

// Defaults for region clustering.
const (
	DefaultClusterCount = 3
	topSkillsPerCluster = 5
)

// matrix is a region × skill frequency table with stable row/column order.
type matrix struct {
	regions []string
	skills  []string
	rows    [][]float64
}

// buildMatrix explodes skill tags into (region, skill) counts. Regions
// and skills are sorted so the matrix layout is deterministic.
func buildMatrix(ds *types.Dataset) *matrix {
	counts := make(map[string]map[string]float64)
	skillSet := make(map[string]struct{})

	for _, r := range ds.Records {
		if r.Region == "" || len(r.SkillTags) == 0 {
			continue
		}
		if counts[r.Region] == nil {
			counts[r.Region] = make(map[string]float64)
		}
		for _, s := range r.SkillTags {
			counts[r.Region][s]++
			skillSet[s] = struct{}{}
		}
	}

	regions := make([]string, 0, len(counts))
	for region := range counts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	skills := make([]string, 0, len(skillSet))
	for s := range skillSet {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	rows := make([][]float64, len(regions))
	for i, region := range regions {
		row := make([]float64, len(skills))
		for j, s := range skills {
			row[j] = counts[region][s]
		}
		rows[i] = row
	}

	return &matrix{regions: regions, skills: skills, rows: rows}
}

// ClusterRegions clusters regions by skill frequency and returns, per
// region, its cluster assignment and the cluster's top skills. The
// cluster count is capped at the number of regions. Empty datasets
// produce an empty result, not an error.
func ClusterRegions(ds *types.Dataset, clusterCount int) []types.RegionCluster {
	if ds == nil || ds.Len() == 0 {
		return []types.RegionCluster{}
	}
	if clusterCount < 1 {
		clusterCount = DefaultClusterCount
	}

	m := buildMatrix(ds)
	if len(m.regions) == 0 {
		return []types.RegionCluster{}
	}

	k := clusterCount
	if k > len(m.regions) {
		k = len(m.regions)
	}
	labels := kmeans(m.rows, k)

	topSkills := topSkillsByCluster(m, labels, k)

	result := make([]types.RegionCluster, len(m.regions))
	for i, region := range m.regions {
		result[i] = types.RegionCluster{
			Region:    region,
			ClusterID: labels[i],
			TopSkills: topSkills[labels[i]],
		}
	}
	return result
}

// topSkillsByCluster sums skill counts over each cluster's regions and
// keeps the top entries with a positive count.
func topSkillsByCluster(m *matrix, labels []int, k int) [][]string {
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, len(m.skills))
	}
	for i, row := range m.rows {
		c := labels[i]
		for j, v := range row {
			sums[c][j] += v
		}
	}

	top := make([][]string, k)
	for c := 0; c < k; c++ {
		type skillCount struct {
			skill string
			count float64
		}
		var entries []skillCount
		for j, v := range sums[c] {
			if v > 0 {
				entries = append(entries, skillCount{skill: m.skills[j], count: v})
			}
		}
		sort.Slice(entries, func(a, b int) bool {
			if entries[a].count != entries[b].count {
				return entries[a].count > entries[b].count
			}
			return entries[a].skill < entries[b].skill
		})
		if len(entries) > topSkillsPerCluster {
			entries = entries[:topSkillsPerCluster]
		}
		skills := make([]string, len(entries))
		for i, e := range entries {
			skills[i] = e.skill
		}
		top[c] = skills
	}
	return top
}
