// Package graph builds a skill co-occurrence graph from skill tags.
package graph

import (
	"sort"

	"github.com/skillgenome/genome/internal/types"
)

// TopN is the number of top skills and pairs reported in a summary.
const TopN = 10

// Graph is an undirected skill co-occurrence graph. Nodes are skills;
// edge weight is the number of records in which both skills appear.
type Graph struct {
	adjacency map[string]map[string]int
}

// Build constructs the graph from a dataset. Tags are deduplicated
// within each record, so one record contributes at most 1 to any edge.
func Build(ds *types.Dataset) *Graph {
	g := &Graph{adjacency: make(map[string]map[string]int)}
	if ds == nil {
		return g
	}

	for _, r := range ds.Records {
		skills := uniqueSorted(r.SkillTags)
		for i := 0; i < len(skills); i++ {
			for j := i + 1; j < len(skills); j++ {
				g.addEdge(skills[i], skills[j])
			}
		}
	}
	return g
}

func (g *Graph) addEdge(a, b string) {
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[string]int)
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[string]int)
	}
	g.adjacency[a][b]++
	g.adjacency[b][a]++
}

// NodeCount returns the number of skills with at least one edge.
func (g *Graph) NodeCount() int {
	return len(g.adjacency)
}

// EdgeCount returns the number of distinct skill pairs.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, neighbors := range g.adjacency {
		total += len(neighbors)
	}
	return total / 2
}

// Weight returns the co-occurrence count for a skill pair, 0 if the
// pair never co-occurs.
func (g *Graph) Weight(a, b string) int {
	return g.adjacency[a][b]
}

// Degree returns the number of distinct skills co-occurring with skill.
func (g *Graph) Degree(skill string) int {
	return len(g.adjacency[skill])
}

// TopSkills returns the n highest-degree skills, ties broken
// lexicographically so output is deterministic.
func (g *Graph) TopSkills(n int) []types.SkillDegree {
	skills := make([]types.SkillDegree, 0, len(g.adjacency))
	for skill, neighbors := range g.adjacency {
		skills = append(skills, types.SkillDegree{Skill: skill, Degree: len(neighbors)})
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Degree != skills[j].Degree {
			return skills[i].Degree > skills[j].Degree
		}
		return skills[i].Skill < skills[j].Skill
	})
	if len(skills) > n {
		skills = skills[:n]
	}
	return skills
}

// TopPairs returns the n heaviest edges, ties broken lexicographically.
func (g *Graph) TopPairs(n int) []types.SkillPair {
	var pairs []types.SkillPair
	for a, neighbors := range g.adjacency {
		for b, w := range neighbors {
			if a < b {
				pairs = append(pairs, types.SkillPair{Skill1: a, Skill2: b, Weight: w})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Weight != pairs[j].Weight {
			return pairs[i].Weight > pairs[j].Weight
		}
		if pairs[i].Skill1 != pairs[j].Skill1 {
			return pairs[i].Skill1 < pairs[j].Skill1
		}
		return pairs[i].Skill2 < pairs[j].Skill2
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// Related returns up to n synergy neighbors of skill, strongest first.
func (g *Graph) Related(skill string, n int) []types.RelatedSkill {
	neighbors := g.adjacency[skill]
	related := make([]types.RelatedSkill, 0, len(neighbors))
	for s, w := range neighbors {
		related = append(related, types.RelatedSkill{Skill: s, Weight: w})
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Weight != related[j].Weight {
			return related[i].Weight > related[j].Weight
		}
		return related[i].Skill < related[j].Skill
	})
	if len(related) > n {
		related = related[:n]
	}
	return related
}

// Summary returns the dashboard view: top skills by degree and top
// pairs by weight.
func (g *Graph) Summary() *types.GraphSummary {
	return &types.GraphSummary{
		TopSkills: g.TopSkills(TopN),
		TopPairs:  g.TopPairs(TopN),
	}
}

func uniqueSorted(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
