package events

import (
	"testing"

	"github.com/steel-maritime/demurrage/core/model"
)

func TestEventIDs(t *testing.T) {
	ev := PredictionEvent{Request: model.PredictionRequest{
		Vessel:      &model.Vessel{ID: "v1"},
		Destination: &model.Port{ID: "NLRTM"},
	}}
	if ev.VesselID() != "v1" || ev.PortID() != "NLRTM" {
		t.Fatalf("unexpected ids %q %q", ev.VesselID(), ev.PortID())
	}
	if (PredictionEvent{}).VesselID() != "" || (PredictionEvent{}).PortID() != "" {
		t.Fatalf("expected empty ids")
	}
	if (OptimizationEvent{}).VesselID() != "" {
		t.Fatalf("expected empty id")
	}
}
