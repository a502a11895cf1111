package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steel-maritime/demurrage/core/optimizer"
	"github.com/steel-maritime/demurrage/core/prediction"
)

var slots = []optimizer.TimeSlot{
	{ETA: time.Date(2025, 1, 20, 6, 0, 0, 0, time.UTC), PredictedCost: 25000.5, RiskLevel: prediction.RiskLow},
	{ETA: time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC), PredictedCost: 31000, RiskLevel: prediction.RiskModerate},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, slots); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "eta,predicted_cost,risk_level", lines[0])
	assert.Equal(t, "2025-01-20 06:00,25000.50,low", lines[1])
	assert.Equal(t, "2025-01-20 12:00,31000.00,moderate", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, slots); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var got []optimizer.TimeSlot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, slots, got)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, slots))
	assert.True(t, strings.HasPrefix(buf.String(), "eta,"))
	assert.Error(t, Write(&buf, "xml", slots))
}
