// Package fleet holds the vessel, port and cargo records that prediction
// requests refer to by id.
package fleet

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/steel-maritime/demurrage/core/model"
)

var (
	// ErrUnknownVesselType is returned when a vessel references a vessel type
	// that is not part of the dataset.
	ErrUnknownVesselType = errors.New("fleet: unknown vessel type")
	// ErrDuplicateID is returned when two records of the same kind share an id.
	ErrDuplicateID = errors.New("fleet: duplicate id")
	// ErrEmptyID is returned for records without an id.
	ErrEmptyID = errors.New("fleet: empty id")
)

// Dataset is the serialized form of a fleet.
type Dataset struct {
	VesselTypes []model.VesselType `json:"vessel_types" yaml:"vessel_types"`
	Vessels     []model.Vessel     `json:"vessels" yaml:"vessels"`
	Ports       []model.Port       `json:"ports" yaml:"ports"`
	CargoTypes  []model.CargoType  `json:"cargo_types" yaml:"cargo_types"`
}

// Registry is an immutable in-memory index of a Dataset. Lookups return
// copies, so a Registry is safe for concurrent use.
type Registry struct {
	vesselTypes map[string]model.VesselType
	vessels     map[string]model.Vessel
	ports       map[string]model.Port
	cargo       map[string]model.CargoType
}

// NewRegistry indexes ds and links every vessel to its vessel type.
func NewRegistry(ds Dataset) (*Registry, error) {
	r := &Registry{
		vesselTypes: make(map[string]model.VesselType, len(ds.VesselTypes)),
		vessels:     make(map[string]model.Vessel, len(ds.Vessels)),
		ports:       make(map[string]model.Port, len(ds.Ports)),
		cargo:       make(map[string]model.CargoType, len(ds.CargoTypes)),
	}
	for _, vt := range ds.VesselTypes {
		if err := checkID("vessel type", vt.ID, r.vesselTypes); err != nil {
			return nil, err
		}
		r.vesselTypes[vt.ID] = vt
	}
	for _, v := range ds.Vessels {
		if err := checkID("vessel", v.ID, r.vessels); err != nil {
			return nil, err
		}
		if v.TypeID != "" {
			if _, ok := r.vesselTypes[v.TypeID]; !ok {
				return nil, fmt.Errorf("vessel %s: %w %q", v.ID, ErrUnknownVesselType, v.TypeID)
			}
		}
		v.Type = nil
		r.vessels[v.ID] = v
	}
	for _, p := range ds.Ports {
		if err := checkID("port", p.ID, r.ports); err != nil {
			return nil, err
		}
		r.ports[p.ID] = p
	}
	for _, c := range ds.CargoTypes {
		if err := checkID("cargo type", c.ID, r.cargo); err != nil {
			return nil, err
		}
		r.cargo[c.ID] = c
	}
	return r, nil
}

func checkID[V any](kind, id string, seen map[string]V) error {
	if id == "" {
		return fmt.Errorf("%s: %w", kind, ErrEmptyID)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicateID)
	}
	return nil
}

// Vessel returns the vessel with its type attached, or nil.
func (r *Registry) Vessel(id string) *model.Vessel {
	v, ok := r.vessels[id]
	if !ok {
		return nil
	}
	if vt, ok := r.vesselTypes[v.TypeID]; ok {
		v.Type = &vt
	}
	return &v
}

// VesselType returns the vessel type or nil.
func (r *Registry) VesselType(id string) *model.VesselType {
	vt, ok := r.vesselTypes[id]
	if !ok {
		return nil
	}
	return &vt
}

// Port returns the port or nil.
func (r *Registry) Port(id string) *model.Port {
	p, ok := r.ports[id]
	if !ok {
		return nil
	}
	return &p
}

// CargoType returns the cargo type or nil.
func (r *Registry) CargoType(id string) *model.CargoType {
	c, ok := r.cargo[id]
	if !ok {
		return nil
	}
	return &c
}

// Vessels lists all vessels sorted by id.
func (r *Registry) Vessels() []model.Vessel {
	out := make([]model.Vessel, 0, len(r.vessels))
	for _, id := range sortedIDs(r.vessels) {
		out = append(out, *r.Vessel(id))
	}
	return out
}

// VesselTypes lists all vessel types sorted by id.
func (r *Registry) VesselTypes() []model.VesselType {
	return values(r.vesselTypes)
}

// Ports lists all ports sorted by id.
func (r *Registry) Ports() []model.Port {
	return values(r.ports)
}

// CargoTypes lists all cargo types sorted by id.
func (r *Registry) CargoTypes() []model.CargoType {
	return values(r.cargo)
}

// RequestIDs identifies the records of a prediction request.
type RequestIDs struct {
	VesselID     string
	OriginPortID string
	DestPortID   string
	CargoTypeID  string
	CargoVolume  float64
	ETA          time.Time
}

// Resolve looks up the records named by ids. Unknown ids resolve to nil.
func (r *Registry) Resolve(ids RequestIDs) model.PredictionRequest {
	req := model.PredictionRequest{
		Vessel:      r.Vessel(ids.VesselID),
		Destination: r.Port(ids.DestPortID),
		Cargo:       r.CargoType(ids.CargoTypeID),
		CargoVolume: ids.CargoVolume,
		ETA:         ids.ETA,
	}
	if ids.OriginPortID != "" {
		req.Origin = r.Port(ids.OriginPortID)
	}
	return req
}

// ResolveOptimization looks up the records of an arrival search. The origin
// port and ETA of ids are ignored.
func (r *Registry) ResolveOptimization(ids RequestIDs) model.OptimizationRequest {
	return model.OptimizationRequest{
		Vessel:      r.Vessel(ids.VesselID),
		Destination: r.Port(ids.DestPortID),
		Cargo:       r.CargoType(ids.CargoTypeID),
		CargoVolume: ids.CargoVolume,
	}
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func values[V any](m map[string]V) []V {
	out := make([]V, 0, len(m))
	for _, id := range sortedIDs(m) {
		out = append(out, m[id])
	}
	return out
}
