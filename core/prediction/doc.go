// Package prediction estimates the berth delay and demurrage cost of a
// vessel arrival.
//
// Five independent calculators turn the vessel, port, cargo and ETA into
// normalized risk scores. The Engine combines them with fixed weights into a
// delay factor, amplifies the base delay, derives a 95% confidence band, a
// cost estimate, a risk level and a list of mitigation recommendations. All
// functions are pure; an Engine may be shared between goroutines.
package prediction
