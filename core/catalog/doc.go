// Package catalog holds the static maritime reference tables used by the
// prediction engine: vessel classes, cargo classes, terminal capabilities,
// the delay-cause taxonomy and the categorical demurrage multipliers.
//
// A Catalog is built once and never mutated. Accessors return copies, so a
// single instance can be shared between goroutines without locking. Lookup
// misses resolve to neutral values (0.5 for compatibility scores, 1.0 for
// multipliers) instead of failing.
package catalog
