package model

import "time"

// PredictionRequest bundles the already-resolved records the prediction
// engine works on. Vessel and Destination are required; when either is nil
// the engine returns an empty result.
type PredictionRequest struct {
	Vessel      *Vessel
	Origin      *Port
	Destination *Port
	Cargo       *CargoType
	CargoVolume float64
	// ETA is a naive local timestamp. The zero value means no ETA is known.
	ETA time.Time
}

// WithDefaultETA returns a copy of the request whose ETA is set to now when
// it was left empty.
func (r PredictionRequest) WithDefaultETA(now time.Time) PredictionRequest {
	if r.ETA.IsZero() {
		r.ETA = now
	}
	return r
}

// OptimizationRequest holds the inputs of an arrival-time search. The search
// is destination-only, so no origin port is carried.
type OptimizationRequest struct {
	Vessel      *Vessel
	Destination *Port
	Cargo       *CargoType
	CargoVolume float64
}

// At converts the optimization request into a prediction request for the
// given arrival time.
func (r OptimizationRequest) At(eta time.Time) PredictionRequest {
	return PredictionRequest{
		Vessel:      r.Vessel,
		Destination: r.Destination,
		Cargo:       r.Cargo,
		CargoVolume: r.CargoVolume,
		ETA:         eta,
	}
}
