// Package events defines the events emitted on the event bus.
//
// Available event types:
//   - PredictionEvent: a demurrage prediction was produced
//   - OptimizationEvent: an arrival search completed
//   - AlertEvent: a risk alert was published or failed to publish
package events
