package catalog

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// Neutral values returned on lookup misses.
const (
	NeutralCompatibility = 0.5
	NeutralMultiplier    = 1.0

	compatible        = 1.0
	incompatibleCargo = 0.3
	handledCargo      = 1.0
	unhandledCargo    = 0.4
)

// Catalog is the read-only maritime knowledge base.
type Catalog struct {
	vessels     map[string]VesselClass
	cargo       map[string]CargoClass
	terminals   map[string]TerminalClass
	delays      map[string]DelayCause
	multipliers map[string]map[string]float64
	families    []vesselFamily

	// insertion order of vessel classes, used for relationships
	vesselOrder []string
}

var defaultCatalog = New()

// Default returns the shared catalog built at process start.
func Default() *Catalog { return defaultCatalog }

// New builds a catalog from the built-in tables.
func New() *Catalog {
	c := &Catalog{
		vessels:     make(map[string]VesselClass),
		cargo:       make(map[string]CargoClass),
		terminals:   make(map[string]TerminalClass),
		delays:      make(map[string]DelayCause),
		multipliers: multiplierTables(),
		families:    vesselFamilies(),
	}
	for _, v := range vesselClasses() {
		c.vessels[v.Key] = v
		c.vesselOrder = append(c.vesselOrder, v.Key)
	}
	for _, cc := range cargoClasses() {
		c.cargo[cc.Key] = cc
	}
	for _, t := range terminalClasses() {
		c.terminals[t.Key] = t
	}
	for _, d := range delayCauses() {
		c.delays[d.Key] = d
	}
	return c
}

// Version returns the table revision.
func (c *Catalog) Version() string { return Version }

// VesselClass returns the vessel class registered under key.
func (c *Catalog) VesselClass(key string) (VesselClass, bool) {
	v, ok := c.vessels[key]
	if !ok {
		return VesselClass{}, false
	}
	return cloneVessel(v), true
}

// CargoClass returns the cargo class registered under key.
func (c *Catalog) CargoClass(key string) (CargoClass, bool) {
	cc, ok := c.cargo[key]
	if !ok {
		return CargoClass{}, false
	}
	cc.SpecialRequirements = slices.Clone(cc.SpecialRequirements)
	return cc, true
}

// TerminalClass returns the terminal class registered under key.
func (c *Catalog) TerminalClass(key string) (TerminalClass, bool) {
	t, ok := c.terminals[key]
	if !ok {
		return TerminalClass{}, false
	}
	return cloneTerminal(t), true
}

// DelayCause returns the delay cause registered under key.
func (c *Catalog) DelayCause(key string) (DelayCause, bool) {
	d, ok := c.delays[key]
	if !ok {
		return DelayCause{}, false
	}
	d.Mitigations = slices.Clone(d.Mitigations)
	return d, true
}

// VesselClasses lists all vessel classes sorted by key.
func (c *Catalog) VesselClasses() []VesselClass {
	res := make([]VesselClass, 0, len(c.vessels))
	for _, k := range sortedKeys(c.vessels) {
		res = append(res, cloneVessel(c.vessels[k]))
	}
	return res
}

// CargoClasses lists all cargo classes sorted by key.
func (c *Catalog) CargoClasses() []CargoClass {
	res := make([]CargoClass, 0, len(c.cargo))
	for _, k := range sortedKeys(c.cargo) {
		cc, _ := c.CargoClass(k)
		res = append(res, cc)
	}
	return res
}

// TerminalClasses lists all terminal classes sorted by key.
func (c *Catalog) TerminalClasses() []TerminalClass {
	res := make([]TerminalClass, 0, len(c.terminals))
	for _, k := range sortedKeys(c.terminals) {
		res = append(res, cloneTerminal(c.terminals[k]))
	}
	return res
}

// DelayCauses lists the delay-cause taxonomy sorted by key.
func (c *Catalog) DelayCauses() []DelayCause {
	res := make([]DelayCause, 0, len(c.delays))
	for _, k := range sortedKeys(c.delays) {
		d, _ := c.DelayCause(k)
		res = append(res, d)
	}
	return res
}

// CompatibilityScore rates how well a vessel class suits a cargo class:
// 1.0 when the cargo is listed for the vessel, 0.3 otherwise and 0.5 when the
// vessel class is unknown.
func (c *Catalog) CompatibilityScore(vesselKey, cargoKey string) float64 {
	v, ok := c.vessels[vesselKey]
	if !ok {
		return NeutralCompatibility
	}
	if slices.Contains(v.CompatibleCargo, cargoKey) {
		return compatible
	}
	return incompatibleCargo
}

// PortEfficiencyForCargo rates a terminal class for a cargo class: 1.0 when
// handled, 0.4 otherwise and 0.5 for an unknown terminal class.
func (c *Catalog) PortEfficiencyForCargo(terminalKey, cargoKey string) float64 {
	t, ok := c.terminals[terminalKey]
	if !ok {
		return NeutralCompatibility
	}
	if slices.Contains(t.Handles, cargoKey) {
		return handledCargo
	}
	return unhandledCargo
}

// TerminalEfficiency returns the efficiency multiplier of a terminal quality
// tier, or 1.0 when either key is unknown.
func (c *Catalog) TerminalEfficiency(terminalKey, tier string) float64 {
	t, ok := c.terminals[terminalKey]
	if !ok {
		return NeutralMultiplier
	}
	if f, ok := t.EfficiencyFactors[tier]; ok {
		return f
	}
	return NeutralMultiplier
}

// HandlingComplexity returns the handling complexity of a cargo class or 1.0.
func (c *Catalog) HandlingComplexity(cargoKey string) float64 {
	if cc, ok := c.cargo[cargoKey]; ok {
		return cc.HandlingComplexity
	}
	return NeutralMultiplier
}

// Multiplier looks up a single categorical multiplier. Unknown tables or
// categories yield 1.0.
func (c *Catalog) Multiplier(table, category string) float64 {
	if f, ok := c.multipliers[table][category]; ok {
		return f
	}
	return NeutralMultiplier
}

// MultiplierTable returns a copy of the named table.
func (c *Catalog) MultiplierTable(table string) map[string]float64 {
	return maps.Clone(c.multipliers[table])
}

// DemurrageRiskFactors combines the categorical multipliers into a single
// risk multiplier by multiplication.
func (c *Catalog) DemurrageRiskFactors(vesselSize, cargoComplexity, portEfficiency, season string) RiskFactors {
	if season == "" {
		season = "normal"
	}
	f := RiskFactors{
		VesselFactor:   c.Multiplier(TableVesselSize, vesselSize),
		CargoFactor:    c.Multiplier(TableCargoComplexity, cargoComplexity),
		PortFactor:     c.Multiplier(TablePortEfficiency, portEfficiency),
		SeasonalFactor: c.Multiplier(TableSeasonal, season),
	}
	f.CombinedRisk = f.VesselFactor * f.CargoFactor * f.PortFactor * f.SeasonalFactor
	return f
}

// CargoRelationships lists every vessel/cargo pairing where the cargo is both
// declared compatible with the vessel class and present in the cargo table.
func (c *Catalog) CargoRelationships() []Relationship {
	var res []Relationship
	for _, vk := range c.vesselOrder {
		v := c.vessels[vk]
		for _, ck := range v.CompatibleCargo {
			cc, ok := c.cargo[ck]
			if !ok {
				continue
			}
			res = append(res, Relationship{VesselType: v.Name, CargoType: cc.Name, Compatibility: LevelHigh})
		}
	}
	return res
}

// MatchVesselFamily matches a vessel type name against the compatibility
// matrix. recognized reports whether the name belongs to a known family and
// compatible whether the cargo category fits that family. Both inputs are
// compared case-insensitively by substring.
func (c *Catalog) MatchVesselFamily(vesselTypeName, cargoCategory string) (recognized, compatible bool) {
	name := strings.ToLower(vesselTypeName)
	category := strings.ToLower(cargoCategory)
	for _, fam := range c.families {
		if !strings.Contains(name, fam.name) {
			continue
		}
		for _, cat := range fam.categories {
			if strings.Contains(category, cat) {
				return true, true
			}
		}
		return true, false
	}
	return false, false
}

func cloneVessel(v VesselClass) VesselClass {
	v.Subtypes = slices.Clone(v.Subtypes)
	v.CompatibleCargo = slices.Clone(v.CompatibleCargo)
	return v
}

func cloneTerminal(t TerminalClass) TerminalClass {
	t.Handles = slices.Clone(t.Handles)
	t.Equipment = slices.Clone(t.Equipment)
	t.EfficiencyFactors = maps.Clone(t.EfficiencyFactors)
	return t
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
