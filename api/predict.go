package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/steel-maritime/demurrage/core/fleet"
)

// ETALayout is the naive local timestamp accepted for eta.
const ETALayout = "2006-01-02T15:04"

// ErrInvalidETA is returned for an eta that does not match ETALayout.
var ErrInvalidETA = errors.New("invalid eta")

// PredictRequest is the body of POST /api/predict.
type PredictRequest struct {
	VesselID     string  `json:"vessel_id"`
	OriginPortID string  `json:"origin_port_id"`
	DestPortID   string  `json:"dest_port_id"`
	CargoTypeID  string  `json:"cargo_type_id"`
	CargoVolume  float64 `json:"cargo_volume"`
	ETA          string  `json:"eta"`
}

// OptimizeRequest is the body of POST /api/optimization.
type OptimizeRequest struct {
	VesselID    string  `json:"vessel_id"`
	DestPortID  string  `json:"dest_port_id"`
	CargoTypeID string  `json:"cargo_type_id"`
	CargoVolume float64 `json:"cargo_volume"`
}

// ParseETA parses s in ETALayout, optionally followed by seconds. An empty
// string yields the zero time.
func ParseETA(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{ETALayout, ETALayout + ":05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: want %s", ErrInvalidETA, s, ETALayout)
}

// IDs converts the request into registry ids.
func (r PredictRequest) IDs() (fleet.RequestIDs, error) {
	eta, err := ParseETA(r.ETA)
	if err != nil {
		return fleet.RequestIDs{}, err
	}
	return fleet.RequestIDs{
		VesselID:     r.VesselID,
		OriginPortID: r.OriginPortID,
		DestPortID:   r.DestPortID,
		CargoTypeID:  r.CargoTypeID,
		CargoVolume:  r.CargoVolume,
		ETA:          eta,
	}, nil
}

func (h *Handler) predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ids, err := req.IDs()
	if err != nil {
		badRequest(c, err)
		return
	}
	p := h.svc.Predict(c.Request.Context(), ids)
	c.Header("X-Prediction-ID", p.ID)
	c.JSON(http.StatusOK, p.Result)
}

func (h *Handler) optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := h.svc.Optimize(c.Request.Context(), fleet.RequestIDs{
		VesselID:    req.VesselID,
		DestPortID:  req.DestPortID,
		CargoTypeID: req.CargoTypeID,
		CargoVolume: req.CargoVolume,
	})
	if err != nil {
		h.log.Errorf("optimization: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Optimization-ID", o.ID)
	c.JSON(http.StatusOK, o.Report)
}
