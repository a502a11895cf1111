package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steel-maritime/demurrage/api"
	"github.com/steel-maritime/demurrage/app"
	"github.com/steel-maritime/demurrage/pkg/export"
)

// requestFlags are shared by predict and optimize.
type requestFlags struct {
	vessel string
	origin string
	dest   string
	cargo  string
	volume float64
	eta    string
}

func (f *requestFlags) register(cmd *cobra.Command, withETA bool) {
	cmd.Flags().StringVar(&f.vessel, "vessel", "", "vessel id")
	cmd.Flags().StringVar(&f.dest, "dest", "", "destination port id")
	cmd.Flags().StringVar(&f.cargo, "cargo", "", "cargo type id")
	cmd.Flags().Float64Var(&f.volume, "volume", 0, "cargo volume")
	_ = cmd.MarkFlagRequired("vessel")
	_ = cmd.MarkFlagRequired("dest")
	if withETA {
		cmd.Flags().StringVar(&f.origin, "origin", "", "origin port id")
		cmd.Flags().StringVar(&f.eta, "eta", "", "arrival as "+api.ETALayout+"; now when empty")
	}
}

func (f *requestFlags) request() api.PredictRequest {
	return api.PredictRequest{
		VesselID:     f.vessel,
		OriginPortID: f.origin,
		DestPortID:   f.dest,
		CargoTypeID:  f.cargo,
		CargoVolume:  f.volume,
		ETA:          f.eta,
	}
}

var (
	predictFlags   requestFlags
	optimizeFlags  requestFlags
	optimizeFormat string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict demurrage for a vessel arrival",
	RunE:  runPredict,
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the next two weeks for the cheapest arrival time",
	RunE:  runOptimize,
}

func init() {
	predictFlags.register(predictCmd, true)
	optimizeFlags.register(optimizeCmd, false)
	optimizeCmd.Flags().StringVarP(&optimizeFormat, "format", "f", export.FormatJSON, "output format: json (report) or csv (all candidates)")
	rootCmd.AddCommand(predictCmd, optimizeCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	ids, err := predictFlags.request().IDs()
	if err != nil {
		return err
	}
	return withService(cmd, func(svc *app.Service) error {
		if svc.Fleet().Vessel(ids.VesselID) == nil {
			return fmt.Errorf("unknown vessel %q", ids.VesselID)
		}
		p := svc.Predict(cmd.Context(), ids)
		return printJSON(cmd.OutOrStdout(), p.Result)
	})
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	if optimizeFormat != export.FormatJSON && optimizeFormat != export.FormatCSV {
		return fmt.Errorf("unsupported format %q", optimizeFormat)
	}
	ids, err := optimizeFlags.request().IDs()
	if err != nil {
		return err
	}
	return withService(cmd, func(svc *app.Service) error {
		if svc.Fleet().Vessel(ids.VesselID) == nil {
			return fmt.Errorf("unknown vessel %q", ids.VesselID)
		}
		o, err := svc.Optimize(cmd.Context(), ids)
		if err != nil {
			return err
		}
		if optimizeFormat == export.FormatCSV {
			return export.WriteCSV(cmd.OutOrStdout(), o.Report.Candidates)
		}
		return printJSON(cmd.OutOrStdout(), o.Report)
	})
}
