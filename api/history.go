package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/steel-maritime/demurrage/core/metrics/exposure"
	"github.com/steel-maritime/demurrage/infra/audit"
)

// Default and maximum number of history records returned.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 1000
)

// DefaultExposureDays is the analytics window when no range is given.
const DefaultExposureDays = 30

func (h *Handler) history(c *gin.Context) {
	q := audit.Query{
		Kind:     c.Query("kind"),
		VesselID: c.Query("vessel_id"),
		PortID:   c.Query("port_id"),
		Limit:    DefaultHistoryLimit,
	}
	switch q.Kind {
	case "", audit.KindPrediction, audit.KindOptimization:
	default:
		badRequest(c, fmt.Errorf("unknown kind %q", q.Kind))
		return
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			badRequest(c, fmt.Errorf("invalid limit %q", s))
			return
		}
		q.Limit = min(n, MaxHistoryLimit)
	}
	var err error
	if q.Start, err = parseTime(c.Query("start")); err != nil {
		badRequest(c, err)
		return
	}
	if q.End, err = parseTime(c.Query("end")); err != nil {
		badRequest(c, err)
		return
	}

	records, err := h.svc.History(c.Request.Context(), q)
	if err != nil {
		h.log.Errorf("history query: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []audit.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339", s)
	}
	return t, nil
}

type exposureDay struct {
	Date        string  `json:"date"`
	Predictions int     `json:"predictions"`
	TotalCost   float64 `json:"total_predicted_cost"`
	AvgCost     float64 `json:"avg_predicted_cost"`
	AvgDelay    float64 `json:"avg_delay_hours"`
}

// portExposure reports daily predicted demurrage for a port over the last
// DefaultExposureDays days, or the start/end range when given.
func (h *Handler) portExposure(c *gin.Context) {
	portID := c.Param("id")
	if h.svc.Fleet().Port(portID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "port not found"})
		return
	}
	start, err := parseTime(c.Query("start"))
	if err != nil {
		badRequest(c, err)
		return
	}
	end, err := parseTime(c.Query("end"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if end.IsZero() {
		end = h.svc.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -DefaultExposureDays)
	}

	recs, err := h.svc.PortExposure(portID, exposure.Day(start), end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	days := make([]exposureDay, 0, len(recs))
	var total float64
	for _, r := range recs {
		days = append(days, exposureDay{
			Date:        r.Date.Format(time.DateOnly),
			Predictions: r.Predictions,
			TotalCost:   r.Cost,
			AvgCost:     r.AvgCost(),
			AvgDelay:    r.AvgDelay(),
		})
		total += r.Cost
	}
	c.JSON(http.StatusOK, gin.H{
		"port_id":              portID,
		"days":                 days,
		"total_predicted_cost": total,
	})
}

// analytics reports fleet totals, per-port and per-vessel summaries and the
// monthly cost trend. Without start/end every recorded prediction counts.
func (h *Handler) analytics(c *gin.Context) {
	start, err := parseTime(c.Query("start"))
	if err != nil {
		badRequest(c, err)
		return
	}
	end, err := parseTime(c.Query("end"))
	if err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.svc.Analytics(start, end)
	if err != nil {
		h.log.Errorf("analytics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
