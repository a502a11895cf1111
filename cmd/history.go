package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/steel-maritime/demurrage/app"
	"github.com/steel-maritime/demurrage/infra/audit"
)

var historyFlags struct {
	kind   string
	vessel string
	port   string
	limit  int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show audited predictions and searches, newest first",
	Long:  "Show audited predictions and searches. Only a file-backed audit trail (audit.enabled) outlives the process.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(svc *app.Service) error {
			recs, err := svc.History(cmd.Context(), audit.Query{
				Kind:     historyFlags.kind,
				VesselID: historyFlags.vessel,
				PortID:   historyFlags.port,
				Limit:    historyFlags.limit,
			})
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tKIND\tVESSEL\tPORT\tRISK\tCOST\tSAVINGS")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
					r.Timestamp.Format("2006-01-02 15:04:05"), r.Kind, r.VesselID, r.PortID, r.RiskLevel, r.PredictedCost, r.Savings)
			}
			return tw.Flush()
		})
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.kind, "kind", "", "prediction or optimization")
	historyCmd.Flags().StringVar(&historyFlags.vessel, "vessel", "", "vessel id")
	historyCmd.Flags().StringVar(&historyFlags.port, "port", "", "destination port id")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum records")
	rootCmd.AddCommand(historyCmd)
}
