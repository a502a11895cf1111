package prediction

import "github.com/steel-maritime/demurrage/core/model"

// MockPredictor returns canned results keyed by vessel ID.
type MockPredictor struct {
	Results map[string]Result
}

// Predict returns the configured result for the request's vessel or Empty().
func (m MockPredictor) Predict(req model.PredictionRequest) Result {
	if req.Vessel == nil || m.Results == nil {
		return Empty()
	}
	if r, ok := m.Results[req.Vessel.ID]; ok {
		r.Recommendations = append([]Recommendation(nil), r.Recommendations...)
		return r
	}
	return Empty()
}
