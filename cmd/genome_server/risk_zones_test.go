package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgenome/genome/internal/types"
)

func TestRunRiskZones(t *testing.T) {
	riskIn = writeFilteredDir(t)
	riskOut = t.TempDir()
	riskMinSupport = 2

	require.NoError(t, runRiskZones(riskZonesCmd, nil))

	data, err := os.ReadFile(filepath.Join(riskOut, "risk_zones.json"))
	require.NoError(t, err)

	var zones []types.RiskZone
	require.NoError(t, json.Unmarshal(data, &zones))
	require.Len(t, zones, 2)
	for _, zone := range zones {
		assert.NotEmpty(t, zone.Level)
		assert.GreaterOrEqual(t, zone.RiskScore, 0.0)
	}
}

func TestRunRiskZones_MissingInput(t *testing.T) {
	riskIn = t.TempDir()
	riskOut = t.TempDir()
	riskMinSupport = 10

	assert.Error(t, runRiskZones(riskZonesCmd, nil))
}
