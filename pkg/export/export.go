// Package export writes optimizer candidate grids as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/steel-maritime/demurrage/core/optimizer"
	"github.com/steel-maritime/demurrage/core/prediction"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// WriteJSON writes the slots to w as a JSON array.
func WriteJSON(w io.Writer, slots []optimizer.TimeSlot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if slots == nil {
		slots = []optimizer.TimeSlot{}
	}
	return enc.Encode(slots)
}

// WriteCSV writes one row per slot with an eta,predicted_cost,risk_level
// header.
func WriteCSV(w io.Writer, slots []optimizer.TimeSlot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"eta", "predicted_cost", "risk_level"}); err != nil {
		return err
	}
	for _, s := range slots {
		rec := []string{
			s.ETA.Format(prediction.WindowTimeLayout),
			strconv.FormatFloat(s.PredictedCost, 'f', 2, 64),
			string(s.RiskLevel),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches on format.
func Write(w io.Writer, format string, slots []optimizer.TimeSlot) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, slots)
	case FormatCSV:
		return WriteCSV(w, slots)
	}
	return fmt.Errorf("unsupported format %q", format)
}
