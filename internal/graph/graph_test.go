package graph

import (
	"testing"

	"github.com/skillgenome/genome/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datasetFromTags(tagSets ...[]string) *types.Dataset {
	records := make([]types.Record, len(tagSets))
	for i, tags := range tagSets {
		records[i] = types.Record{UserID: "u", SkillTags: tags}
	}
	return types.NewDataset(records)
}

func TestBuild_EdgeWeights(t *testing.T) {
	g := Build(datasetFromTags(
		[]string{"go", "sql"},
		[]string{"go", "sql", "docker"},
		[]string{"python"},
	))

	assert.Equal(t, 4, g.NodeCount(), "python has no co-occurrence, so no edges")
	assert.Equal(t, 2, g.Weight("go", "sql"))
	assert.Equal(t, 2, g.Weight("sql", "go"), "graph is undirected")
	assert.Equal(t, 1, g.Weight("go", "docker"))
	assert.Equal(t, 0, g.Weight("go", "python"))
	assert.Equal(t, 3, g.EdgeCount())
}

func TestBuild_DuplicateTagsInRecordCountOnce(t *testing.T) {
	g := Build(datasetFromTags([]string{"go", "go", "sql"}))
	assert.Equal(t, 1, g.Weight("go", "sql"))
}

func TestTopSkills_SortedByDegreeThenName(t *testing.T) {
	g := Build(datasetFromTags(
		[]string{"go", "sql"},
		[]string{"go", "docker"},
		[]string{"sql", "docker"},
		[]string{"go", "rust"},
	))

	top := g.TopSkills(10)
	require.Len(t, top, 4)
	assert.Equal(t, types.SkillDegree{Skill: "go", Degree: 3}, top[0])
	// docker and sql both have degree 2; lexicographic tie-break.
	assert.Equal(t, "docker", top[1].Skill)
	assert.Equal(t, "sql", top[2].Skill)
	assert.Equal(t, types.SkillDegree{Skill: "rust", Degree: 1}, top[3])
}

func TestTopSkills_Truncates(t *testing.T) {
	g := Build(datasetFromTags(
		[]string{"a", "b"},
		[]string{"c", "d"},
		[]string{"e", "f"},
	))
	assert.Len(t, g.TopSkills(2), 2)
}

func TestTopPairs(t *testing.T) {
	g := Build(datasetFromTags(
		[]string{"go", "sql"},
		[]string{"go", "sql"},
		[]string{"go", "sql"},
		[]string{"go", "docker"},
		[]string{"python", "sql"},
	))

	pairs := g.TopPairs(2)
	require.Len(t, pairs, 2)
	assert.Equal(t, types.SkillPair{Skill1: "go", Skill2: "sql", Weight: 3}, pairs[0])
	// docker/go and python/sql tie at weight 1; docker < python.
	assert.Equal(t, types.SkillPair{Skill1: "docker", Skill2: "go", Weight: 1}, pairs[1])
}

func TestRelated(t *testing.T) {
	g := Build(datasetFromTags(
		[]string{"go", "sql"},
		[]string{"go", "sql"},
		[]string{"go", "docker"},
		[]string{"go", "kubernetes"},
	))

	related := g.Related("go", 2)
	require.Len(t, related, 2)
	assert.Equal(t, types.RelatedSkill{Skill: "sql", Weight: 2}, related[0])
	assert.Equal(t, types.RelatedSkill{Skill: "docker", Weight: 1}, related[1])

	assert.Empty(t, g.Related("unknown", 5))
}

func TestSummary(t *testing.T) {
	g := Build(datasetFromTags([]string{"go", "sql"}))

	summary := g.Summary()
	require.Len(t, summary.TopSkills, 2)
	require.Len(t, summary.TopPairs, 1)
	assert.Equal(t, "go", summary.TopPairs[0].Skill1)
	assert.Equal(t, "sql", summary.TopPairs[0].Skill2)
}

func TestBuild_EmptyDataset(t *testing.T) {
	g := Build(types.NewDataset(nil))
	assert.Equal(t, 0, g.NodeCount())
	assert.Empty(t, g.TopSkills(10))
	assert.Empty(t, g.TopPairs(10))
}
