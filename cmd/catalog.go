package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/steel-maritime/demurrage/core/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the reference catalog",
}

var riskFlags struct {
	vesselSize string
	cargo      string
	port       string
	season     string
}

func init() {
	cat := catalog.Default()
	catalogCmd.AddCommand(
		&cobra.Command{
			Use:   "vessels",
			Short: "List vessel classes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tNAME\tCATEGORY\tCOMPATIBLE CARGO")
				for _, v := range cat.VesselClasses() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Key, v.Name, v.Category, strings.Join(v.CompatibleCargo, ","))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "cargo",
			Short: "List cargo classes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tNAME\tCATEGORY\tCOMPLEXITY\tRATE\tHAZARDOUS")
				for _, c := range cat.CargoClasses() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.0f\t%t\n", c.Key, c.Name, c.Category, c.HandlingComplexity, c.TypicalLoadingRate, c.Hazardous)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "terminals",
			Short: "List terminal classes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printJSON(cmd.OutOrStdout(), cat.TerminalClasses())
			},
		},
		&cobra.Command{
			Use:   "delays",
			Short: "List delay causes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tNAME\tMIN H\tMAX H\tPREDICTABILITY")
				for _, d := range cat.DelayCauses() {
					fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%s\n", d.Key, d.Name, d.TypicalDelay.MinHours, d.TypicalDelay.MaxHours, d.Predictability)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "relationships",
			Short: "List vessel and cargo pairings",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VESSEL\tCARGO\tCOMPATIBILITY")
				for _, r := range cat.CargoRelationships() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.VesselType, r.CargoType, r.Compatibility)
				}
				return tw.Flush()
			},
		},
		riskCmd(cat),
	)
	rootCmd.AddCommand(catalogCmd)
}

func riskCmd(cat *catalog.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Combine the categorical risk multipliers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), cat.DemurrageRiskFactors(riskFlags.vesselSize, riskFlags.cargo, riskFlags.port, riskFlags.season))
		},
	}
	cmd.Flags().StringVar(&riskFlags.vesselSize, "vessel-size", "", "vessel size category")
	cmd.Flags().StringVar(&riskFlags.cargo, "cargo-complexity", "", "cargo complexity category")
	cmd.Flags().StringVar(&riskFlags.port, "port-efficiency", "", "port efficiency category")
	cmd.Flags().StringVar(&riskFlags.season, "season", "", "season category (default normal)")
	return cmd
}
