package catalog

// Version identifies the revision of the reference tables.
const Version = "2024.1"

func vesselClasses() []VesselClass {
	return []VesselClass{
		{
			Key:             "bulk_carrier",
			Name:            "Bulk Carrier",
			Category:        "dry_bulk",
			Subtypes:        []string{"Handysize", "Handymax", "Supramax", "Panamax", "Capesize", "VLOC"},
			CompatibleCargo: []string{"iron_ore", "coal", "grain", "bauxite", "phosphate", "cement"},
			Loading:         LoadingProfile{RateFactor: 1.0, WeatherSensitivity: LevelModerate, InfrastructureNeeds: LevelModerate},
		},
		{
			Key:             "tanker",
			Name:            "Tanker",
			Category:        "liquid",
			Subtypes:        []string{"Product Tanker", "Aframax", "Suezmax", "VLCC", "ULCC"},
			CompatibleCargo: []string{"crude_oil", "refined_products", "chemicals", "lng", "lpg"},
			Loading:         LoadingProfile{RateFactor: 1.2, WeatherSensitivity: LevelLow, InfrastructureNeeds: LevelHigh},
		},
		{
			Key:             "container",
			Name:            "Container Ship",
			Category:        "containerized",
			Subtypes:        []string{"Feeder", "Panamax", "Post-Panamax", "New Panamax", "Ultra Large"},
			CompatibleCargo: []string{"container", "reefer_container", "special_container"},
			Loading:         LoadingProfile{RateFactor: 0.8, WeatherSensitivity: LevelModerate, InfrastructureNeeds: LevelVeryHigh},
		},
		{
			Key:             "general_cargo",
			Name:            "General Cargo",
			Category:        "break_bulk",
			Subtypes:        []string{"Multipurpose", "Heavy Lift", "Ro-Ro"},
			CompatibleCargo: []string{"project_cargo", "steel", "machinery", "vehicles", "general"},
			Loading:         LoadingProfile{RateFactor: 0.6, WeatherSensitivity: LevelHigh, InfrastructureNeeds: LevelModerate},
		},
	}
}

func cargoClasses() []CargoClass {
	return []CargoClass{
		{Key: "iron_ore", Name: "Iron Ore", Category: "dry_bulk", HandlingComplexity: 0.8, TypicalLoadingRate: 8000},
		{Key: "coal", Name: "Coal", Category: "dry_bulk", HandlingComplexity: 0.9, TypicalLoadingRate: 6000,
			WeatherSensitive: true, SpecialRequirements: []string{"dust_control"}},
		{Key: "grain", Name: "Grain", Category: "dry_bulk", HandlingComplexity: 1.0, TypicalLoadingRate: 5000,
			WeatherSensitive: true, SpecialRequirements: []string{"fumigation", "moisture_control"}},
		{Key: "crude_oil", Name: "Crude Oil", Category: "liquid_bulk", HandlingComplexity: 1.2, TypicalLoadingRate: 10000,
			Hazardous: true, SpecialRequirements: []string{"vapor_recovery", "inert_gas"}},
		{Key: "container", Name: "Containers", Category: "containerized", HandlingComplexity: 0.7, TypicalLoadingRate: 30,
			SpecialRequirements: []string{"crane_access"}},
		{Key: "lng", Name: "LNG", Category: "liquid_bulk", HandlingComplexity: 2.0, TypicalLoadingRate: 8000,
			Hazardous: true, SpecialRequirements: []string{"cryogenic_handling", "specialized_terminal"}},
		{Key: "chemicals", Name: "Chemicals", Category: "liquid_bulk", HandlingComplexity: 1.8, TypicalLoadingRate: 3000,
			Hazardous: true, SpecialRequirements: []string{"tank_coating", "segregation"}},
		{Key: "project_cargo", Name: "Project Cargo", Category: "break_bulk", HandlingComplexity: 2.5, TypicalLoadingRate: 500,
			WeatherSensitive: true, SpecialRequirements: []string{"heavy_lift", "special_stowage"}},
	}
}

func terminalClasses() []TerminalClass {
	return []TerminalClass{
		{
			Key:               "bulk_terminal",
			Name:              "Bulk Terminal",
			Handles:           []string{"iron_ore", "coal", "grain", "bauxite", "phosphate"},
			Equipment:         []string{"grab_cranes", "conveyor_systems", "ship_loaders"},
			EfficiencyFactors: map[string]float64{"modern": 1.2, "standard": 1.0, "basic": 0.7},
		},
		{
			Key:               "oil_terminal",
			Name:              "Oil Terminal",
			Handles:           []string{"crude_oil", "refined_products"},
			Equipment:         []string{"loading_arms", "manifolds", "vapor_recovery"},
			EfficiencyFactors: map[string]float64{"deep_water": 1.3, "standard": 1.0, "shallow": 0.6},
		},
		{
			Key:               "container_terminal",
			Name:              "Container Terminal",
			Handles:           []string{"container", "reefer_container"},
			Equipment:         []string{"gantry_cranes", "rtg", "reach_stackers"},
			EfficiencyFactors: map[string]float64{"automated": 1.4, "semi_automated": 1.2, "manual": 0.8},
		},
		{
			Key:               "lng_terminal",
			Name:              "LNG Terminal",
			Handles:           []string{"lng"},
			Equipment:         []string{"cryogenic_arms", "boil_off_gas_system"},
			EfficiencyFactors: map[string]float64{"modern": 1.1, "standard": 1.0},
		},
		{
			Key:               "multipurpose",
			Name:              "Multipurpose Terminal",
			Handles:           []string{"general", "project_cargo", "steel", "vehicles"},
			Equipment:         []string{"mobile_cranes", "forklifts", "ramps"},
			EfficiencyFactors: map[string]float64{"well_equipped": 1.1, "standard": 1.0, "basic": 0.8},
		},
	}
}

func delayCauses() []DelayCause {
	return []DelayCause{
		{Key: "port_congestion", Name: "Port Congestion", TypicalDelay: DelayRange{6, 72},
			Mitigations: []string{"early_arrival", "alternative_port", "scheduling_optimization"}, Predictability: LevelModerate},
		{Key: "berth_unavailability", Name: "Berth Unavailability", TypicalDelay: DelayRange{4, 48},
			Mitigations: []string{"berth_booking", "flexible_scheduling", "priority_arrangements"}, Predictability: LevelHigh},
		{Key: "weather", Name: "Weather Delays", TypicalDelay: DelayRange{2, 96},
			Mitigations: []string{"seasonal_planning", "weather_routing", "buffer_time"}, Predictability: LevelModerate},
		{Key: "cargo_operations", Name: "Cargo Handling Delays", TypicalDelay: DelayRange{2, 24},
			Mitigations: []string{"equipment_coordination", "shift_optimization", "stevedore_efficiency"}, Predictability: LevelHigh},
		{Key: "documentation", Name: "Documentation Issues", TypicalDelay: DelayRange{1, 12},
			Mitigations: []string{"pre_clearance", "digital_documentation", "agent_coordination"}, Predictability: LevelHigh},
		{Key: "draft_restrictions", Name: "Draft/Tide Restrictions", TypicalDelay: DelayRange{2, 24},
			Mitigations: []string{"tide_scheduling", "lightening", "alternative_berth"}, Predictability: LevelVeryHigh},
		{Key: "equipment_failure", Name: "Equipment Breakdown", TypicalDelay: DelayRange{4, 48},
			Mitigations: []string{"backup_equipment", "maintenance_scheduling", "alternative_methods"}, Predictability: LevelLow},
	}
}

func multiplierTables() map[string]map[string]float64 {
	return map[string]map[string]float64{
		TableVesselSize: {
			"handysize": 0.7,
			"handymax":  0.85,
			"panamax":   1.0,
			"capesize":  1.3,
			"vlcc":      1.5,
		},
		TableCargoComplexity: {
			"simple":      0.8,
			"standard":    1.0,
			"complex":     1.3,
			"specialized": 1.6,
		},
		TablePortEfficiency: {
			"very_high": 0.7,
			"high":      0.85,
			"moderate":  1.0,
			"low":       1.3,
			"very_low":  1.6,
		},
		TableSeasonal: {
			"peak":   1.3,
			"normal": 1.0,
			"low":    0.85,
		},
	}
}

// Order matters: the first family whose name occurs in the vessel type name
// decides the match.
func vesselFamilies() []vesselFamily {
	return []vesselFamily{
		{name: "bulk carrier", categories: []string{"dry_bulk", "dry bulk"}},
		{name: "tanker", categories: []string{"liquid_bulk", "liquid bulk", "liquid"}},
		{name: "container", categories: []string{"containerized", "container"}},
		{name: "general cargo", categories: []string{"break_bulk", "break bulk", "general"}},
	}
}
