package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steel-maritime/demurrage/core/catalog"
	"github.com/steel-maritime/demurrage/core/prediction"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	out, err := run(t, "predict", "--vessel", "IMO9123456", "--dest", "NLRTM", "--cargo", "iron_ore", "--volume", "60000", "--eta", "2025-01-16T10:00")
	require.NoError(t, err, out)

	var res prediction.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.NotEqual(t, prediction.RiskUnknown, res.RiskLevel)
	require.NotNil(t, res.OptimalArrivalWindow)
	assert.Equal(t, "2025-01-16 06:00", res.OptimalArrivalWindow.Start.Format(prediction.WindowTimeLayout))
}

func TestPredictCommandErrors(t *testing.T) {
	_, err := run(t, "predict", "--vessel", "IMO0000000", "--dest", "NLRTM", "--eta", "")
	assert.ErrorContains(t, err, "unknown vessel")

	_, err = run(t, "predict", "--vessel", "IMO9123456", "--dest", "NLRTM", "--eta", "soon")
	assert.ErrorContains(t, err, "invalid eta")
}

func TestOptimizeCommandCSV(t *testing.T) {
	out, err := run(t, "optimize", "--vessel", "IMO9345678", "--dest", "AEFJR", "--cargo", "crude_oil", "--volume", "100000", "--format", "csv")
	require.NoError(t, err, out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 43)
	assert.Equal(t, "eta,predicted_cost,risk_level", lines[0])
}

func TestOptimizeCommandJSON(t *testing.T) {
	out, err := run(t, "optimize", "--vessel", "IMO9345678", "--dest", "AEFJR", "--format", "json")
	require.NoError(t, err, out)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Contains(t, raw, "potential_maximum_savings")

	_, err = run(t, "optimize", "--vessel", "IMO9345678", "--dest", "AEFJR", "--format", "xml")
	assert.Error(t, err)
}

func TestCatalogCommands(t *testing.T) {
	out, err := run(t, "catalog", "vessels")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	for _, v := range catalog.Default().VesselClasses() {
		assert.Contains(t, out, v.Name)
	}

	out, err = run(t, "catalog", "risk", "--vessel-size", "no_such_size")
	require.NoError(t, err)
	var rf catalog.RiskFactors
	require.NoError(t, json.Unmarshal([]byte(out), &rf))
	assert.Equal(t, catalog.Default().DemurrageRiskFactors("no_such_size", "", "", "").CombinedRisk, rf.CombinedRisk)

	for _, sub := range []string{"cargo", "terminals", "delays", "relationships"} {
		out, err := run(t, "catalog", sub)
		require.NoError(t, err, sub)
		assert.NotEmpty(t, out, sub)
	}
}

func TestFleetCommands(t *testing.T) {
	out, err := run(t, "fleet", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "MV Pacific Trader")
	assert.Contains(t, out, "IMO9890123")

	out, err = run(t, "fleet", "ports")
	require.NoError(t, err)
	assert.Contains(t, out, "Port of Rotterdam")

	out, err = run(t, "fleet", "cargo")
	require.NoError(t, err)
	assert.Contains(t, out, "bauxite")
}

func TestHistoryCommand(t *testing.T) {
	out, err := run(t, "history", "--kind", "prediction")
	require.NoError(t, err)
	assert.Contains(t, out, "KIND")
}

func TestBadConfigPath(t *testing.T) {
	_, err := run(t, "fleet", "ls", "--config", "missing.yaml")
	assert.ErrorContains(t, err, "load config")
	cfgPath = ""
}
