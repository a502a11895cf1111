package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) catalog(c *gin.Context) {
	cat := h.svc.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"version":             cat.Version(),
		"vessel_types":        cat.VesselClasses(),
		"cargo_types":         cat.CargoClasses(),
		"terminal_types":      cat.TerminalClasses(),
		"cargo_relationships": cat.CargoRelationships(),
	})
}

func (h *Handler) delayCauses(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog().DelayCauses())
}

// riskFactors combines the categorical multipliers. Unknown categories
// count as 1.
func (h *Handler) riskFactors(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog().DemurrageRiskFactors(
		c.Query("vessel_size"),
		c.Query("cargo_complexity"),
		c.Query("port_efficiency"),
		c.Query("season"),
	))
}

func (h *Handler) vessels(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Fleet().Vessels())
}

func (h *Handler) vessel(c *gin.Context) {
	v := h.svc.Fleet().Vessel(c.Param("id"))
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vessel not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) ports(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Fleet().Ports())
}

func (h *Handler) cargoTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Fleet().CargoTypes())
}
