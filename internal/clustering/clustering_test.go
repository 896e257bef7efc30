package clustering

import (
	"testing"

	"github.com/skillgenome/genome/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionRecords(region string, skill string, count int) []types.Record {
	records := make([]types.Record, count)
	for i := range records {
		records[i] = types.Record{UserID: "u", Region: region, SkillTags: []string{skill}}
	}
	return records
}

func TestClusterRegions_SeparatesDistinctProfiles(t *testing.T) {
	var records []types.Record
	// Two tech-heavy regions and two farming-heavy regions.
	records = append(records, regionRecords("North", "go", 20)...)
	records = append(records, regionRecords("West", "go", 18)...)
	records = append(records, regionRecords("South", "farming", 20)...)
	records = append(records, regionRecords("East", "farming", 19)...)

	clusters := ClusterRegions(types.NewDataset(records), 2)
	require.Len(t, clusters, 4)

	byRegion := make(map[string]types.RegionCluster)
	for _, c := range clusters {
		byRegion[c.Region] = c
	}

	assert.Equal(t, byRegion["North"].ClusterID, byRegion["West"].ClusterID)
	assert.Equal(t, byRegion["South"].ClusterID, byRegion["East"].ClusterID)
	assert.NotEqual(t, byRegion["North"].ClusterID, byRegion["South"].ClusterID)

	assert.Equal(t, []string{"go"}, byRegion["North"].TopSkills)
	assert.Equal(t, []string{"farming"}, byRegion["South"].TopSkills)
}

func TestClusterRegions_CapsKAtRegionCount(t *testing.T) {
	var records []types.Record
	records = append(records, regionRecords("North", "go", 5)...)
	records = append(records, regionRecords("South", "sql", 5)...)

	clusters := ClusterRegions(types.NewDataset(records), 3)
	require.Len(t, clusters, 2)
	for _, c := range clusters {
		assert.Less(t, c.ClusterID, 2)
	}
}

func TestClusterRegions_TopSkillsLimitedToFive(t *testing.T) {
	skills := []string{"a", "b", "c", "d", "e", "f", "g"}
	var records []types.Record
	for i, s := range skills {
		// Descending frequency: "a" most common.
		records = append(records, regionRecords("North", s, len(skills)-i+1)...)
	}

	clusters := ClusterRegions(types.NewDataset(records), 1)
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, clusters[0].TopSkills)
}

func TestClusterRegions_Deterministic(t *testing.T) {
	var records []types.Record
	records = append(records, regionRecords("North", "go", 10)...)
	records = append(records, regionRecords("South", "farming", 10)...)
	records = append(records, regionRecords("East", "sql", 10)...)

	first := ClusterRegions(types.NewDataset(records), 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ClusterRegions(types.NewDataset(records), 2))
	}
}

func TestClusterRegions_EmptyDataset(t *testing.T) {
	assert.Empty(t, ClusterRegions(types.NewDataset(nil), 3))
	assert.Empty(t, ClusterRegions(nil, 3))
}

func TestClusterRegions_NoSkillTags(t *testing.T) {
	records := []types.Record{
		{UserID: "u1", Region: "North"},
		{UserID: "u2", Region: "South"},
	}
	assert.Empty(t, ClusterRegions(types.NewDataset(records), 2))
}

func TestKmeans_SingleCluster(t *testing.T) {
	rows := [][]float64{{1, 0}, {2, 0}, {3, 0}}
	labels := kmeans(rows, 1)
	require.Len(t, labels, 3)
	for _, l := range labels {
		assert.Equal(t, 0, l)
	}
}

func TestKmeans_KLargerThanRows(t *testing.T) {
	rows := [][]float64{{1, 0}, {10, 0}}
	labels := kmeans(rows, 5)
	require.Len(t, labels, 2)
	assert.NotEqual(t, labels[0], labels[1])
}
