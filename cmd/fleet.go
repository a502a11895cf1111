package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/steel-maritime/demurrage/core/fleet"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Inspect the vessel, port and cargo registry",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List vessels",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTYPE\tDWT\tDAILY RATE")
		for _, v := range reg.Vessels() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.0f\n", v.ID, v.Name, v.TypeID, v.DWT, v.DailyRate())
		}
		return tw.Flush()
	},
}

var fleetPortsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List ports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY\tCONGESTION\tBERTHS\tRATE")
		for _, p := range reg.Ports() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\t%.0f\n", p.ID, p.Name, p.Country, p.AvgCongestionLevel, p.NumBerths, p.CargoHandlingRate)
		}
		return tw.Flush()
	},
}

var fleetCargoCmd = &cobra.Command{
	Use:   "cargo",
	Short: "List cargo types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCOMPLEXITY\tHAZARDOUS")
		for _, c := range reg.CargoTypes() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%t\n", c.ID, c.Name, c.Category, c.HandlingComplexity, c.IsHazardous)
		}
		return tw.Flush()
	},
}

func init() {
	fleetCmd.AddCommand(fleetLsCmd, fleetPortsCmd, fleetCargoCmd)
	rootCmd.AddCommand(fleetCmd)
}

// loadRegistry reads the configured fleet file or the embedded data.
func loadRegistry() (*fleet.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Fleet.Path == "" {
		return fleet.Default()
	}
	return fleet.Load(cfg.Fleet.Path)
}
