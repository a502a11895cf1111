package model

import (
	"testing"
	"time"
)

func TestVesselDailyRateDefault(t *testing.T) {
	v := Vessel{}
	if v.DailyRate() != DefaultDemurrageRate {
		t.Fatalf("expected default rate got %v", v.DailyRate())
	}
	v.DemurrageRate = 40000
	if v.DailyRate() != 40000 {
		t.Fatalf("expected 40000 got %v", v.DailyRate())
	}
}

func TestVesselTypeName(t *testing.T) {
	v := Vessel{}
	if v.TypeName() != "" {
		t.Fatalf("expected empty name")
	}
	v.Type = &VesselType{Name: "Bulk Carrier"}
	if v.TypeName() != "bulk carrier" {
		t.Fatalf("unexpected type name %q", v.TypeName())
	}
}

func TestPredictionRequestWithDefaultETA(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	r := PredictionRequest{}.WithDefaultETA(now)
	if !r.ETA.Equal(now) {
		t.Fatalf("expected now got %v", r.ETA)
	}
	eta := now.Add(48 * time.Hour)
	r = PredictionRequest{ETA: eta}.WithDefaultETA(now)
	if !r.ETA.Equal(eta) {
		t.Fatalf("explicit eta overwritten: %v", r.ETA)
	}
}

func TestOptimizationRequestAt(t *testing.T) {
	v := &Vessel{ID: "v"}
	p := &Port{ID: "p"}
	eta := time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC)
	req := OptimizationRequest{Vessel: v, Destination: p, CargoVolume: 10}.At(eta)
	if req.Vessel != v || req.Destination != p || req.Origin != nil || req.CargoVolume != 10 || !req.ETA.Equal(eta) {
		t.Fatalf("unexpected request %#v", req)
	}
}
