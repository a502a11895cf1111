package fleet

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/steel-maritime/demurrage/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	assert.Len(t, reg.VesselTypes(), 4)
	assert.Len(t, reg.Vessels(), 8)
	assert.Len(t, reg.Ports(), 10)
	assert.Len(t, reg.CargoTypes(), 10)

	v := reg.Vessel("IMO9345678")
	require.NotNil(t, v)
	assert.Equal(t, "MT Ocean Spirit", v.Name)
	require.NotNil(t, v.Type)
	assert.Equal(t, "Tanker", v.Type.Name)
	assert.Equal(t, 55000.0, v.DemurrageRate)

	p := reg.Port("NLRTM")
	require.NotNil(t, p)
	assert.Equal(t, 25, p.NumBerths)
	assert.Equal(t, 51.9, p.Latitude)

	c := reg.CargoType("lng")
	require.NotNil(t, c)
	assert.True(t, c.IsHazardous)
	assert.Equal(t, 2.0, c.HandlingComplexity)
}

func TestRegistry_ListingsSorted(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	ports := reg.Ports()
	for i := 1; i < len(ports); i++ {
		if ports[i-1].ID >= ports[i].ID {
			t.Fatalf("ports not sorted: %s before %s", ports[i-1].ID, ports[i].ID)
		}
	}
	for _, v := range reg.Vessels() {
		if v.Type == nil {
			t.Fatalf("vessel %s has no type attached", v.ID)
		}
	}
}

func TestRegistry_LookupsReturnCopies(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	v := reg.Vessel("IMO9123456")
	v.DemurrageRate = 1
	v.Type.Name = "changed"
	again := reg.Vessel("IMO9123456")
	assert.Equal(t, 28000.0, again.DemurrageRate)
	assert.Equal(t, "Bulk Carrier", again.Type.Name)

	assert.Nil(t, reg.Vessel("missing"))
	assert.Nil(t, reg.Port("missing"))
	assert.Nil(t, reg.CargoType("missing"))
	assert.Nil(t, reg.VesselType("missing"))
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(Dataset{Vessels: []model.Vessel{{ID: "v1", TypeID: "submarine"}}})
	if !errors.Is(err, ErrUnknownVesselType) {
		t.Fatalf("expected ErrUnknownVesselType, got %v", err)
	}
	_, err = NewRegistry(Dataset{Ports: []model.Port{{ID: "p1"}, {ID: "p1"}}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	_, err = NewRegistry(Dataset{CargoTypes: []model.CargoType{{Name: "nameless"}}})
	if !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	eta := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)

	req := reg.Resolve(RequestIDs{
		VesselID:     "IMO9123456",
		OriginPortID: "BRSSZ",
		DestPortID:   "CNSHA",
		CargoTypeID:  "iron_ore",
		CargoVolume:  60000,
		ETA:          eta,
	})
	require.NotNil(t, req.Vessel)
	require.NotNil(t, req.Origin)
	require.NotNil(t, req.Destination)
	require.NotNil(t, req.Cargo)
	assert.Equal(t, "CNSHA", req.Destination.Code)
	assert.Equal(t, 60000.0, req.CargoVolume)
	assert.Equal(t, eta, req.ETA)

	req = reg.Resolve(RequestIDs{VesselID: "nope", DestPortID: "CNSHA"})
	assert.Nil(t, req.Vessel)
	assert.Nil(t, req.Origin)

	opt := reg.ResolveOptimization(RequestIDs{VesselID: "IMO9123456", DestPortID: "CNSHA", CargoTypeID: "coal", CargoVolume: 5})
	assert.NotNil(t, opt.Vessel)
	assert.Equal(t, "coal", opt.Cargo.ID)
}

func TestDecode(t *testing.T) {
	js := `{"vessel_types":[{"id":"t","name":"Tanker","category":"liquid"}],
		"vessels":[{"id":"v","name":"MT Test","vessel_type_id":"t"}],
		"ports":[{"id":"p","name":"Test Port","num_berths":2}],
		"cargo_types":[{"id":"c","name":"Oil","category":"liquid_bulk"}]}`
	ds, err := Decode(strings.NewReader(js), "json")
	require.NoError(t, err)
	reg, err := NewRegistry(ds)
	require.NoError(t, err)
	assert.Equal(t, "Tanker", reg.Vessel("v").Type.Name)

	_, err = Decode(strings.NewReader(`{"vessels":[{"id":"v","colour":"red"}]}`), "json")
	assert.Error(t, err)
	_, err = Decode(strings.NewReader("ports: []"), "toml")
	assert.Error(t, err)
}

func TestDecode_YAMLAndJSONShareKeys(t *testing.T) {
	fromYAML, err := Decode(bytes.NewReader(defaultDataset), "yaml")
	require.NoError(t, err)
	js, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	fromJSON, err := Decode(bytes.NewReader(js), "json")
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)

	reg, err := NewRegistry(fromJSON)
	require.NoError(t, err)
	for _, v := range reg.Vessels() {
		if v.Type == nil {
			t.Fatalf("vessel %s lost its type after the JSON conversion", v.ID)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.yml")
	data := "ports:\n  - id: p1\n    name: Test\n    cargo_handling_rate: 4000\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, reg.Port("p1").CargoHandlingRate)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
