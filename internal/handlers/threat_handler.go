package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"skylink/internal/services"
)

const UnknownTierError = "unknown threat tier"

// ThreatHandler defines handlers for threat records and exports.
type ThreatHandler struct {
	Service *services.InstrumentedAirspaceService
}

// NewThreatHandler creates a new ThreatHandler with the given service.
func NewThreatHandler(service *services.InstrumentedAirspaceService) *ThreatHandler {
	return &ThreatHandler{Service: service}
}

// GetThreats handles GET /threats with an optional tier filter.
// @Summary List threat records
// @Description Gets the threat records from the latest pass, optionally filtered by tier
// @Tags threats
// @Produce json
// @Param tier query string false "Tier name filter (critical, high, medium, low)"
// @Success 200 {array} models.ThreatRecord "Threat records"
// @Failure 400 {object} map[string]interface{} "Unknown tier name"
// @Router /threats [get]
func (h *ThreatHandler) GetThreats(c *fiber.Ctx) error {
	tier := c.Query("tier")
	threats, err := h.Service.Threats(tier)
	if err != nil {
		if err == services.ErrUnknownTier {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": UnknownTierError,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": true, "message": NoSnapshotError,
		})
	}
	return c.JSON(threats)
}

// GetSummary handles GET /threats/summary.
// @Summary Threat summary
// @Description Gets aggregate statistics over the latest pass's threat records
// @Tags threats
// @Produce json
// @Success 200 {object} models.ThreatSummary "Threat summary"
// @Failure 409 {object} map[string]interface{} "No snapshot loaded yet"
// @Router /threats/summary [get]
func (h *ThreatHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.Service.Summary()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": true, "message": NoSnapshotError,
		})
	}
	return c.JSON(summary)
}

// ExportThreats handles POST /threats/export.
// @Summary Export threat records
// @Description Writes the latest pass's threat records to timestamped JSON and CSV files
// @Tags threats
// @Produce json
// @Success 200 {object} services.ExportResult "Paths of the written files"
// @Failure 409 {object} map[string]interface{} "No snapshot loaded yet"
// @Failure 500 {object} map[string]interface{} "Export failed"
// @Router /threats/export [post]
func (h *ThreatHandler) ExportThreats(c *fiber.Ctx) error {
	result, err := h.Service.ExportThreats()
	if err != nil {
		if err == services.ErrNoSnapshot {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": NoSnapshotError,
			})
		}
		log.Printf("Error exporting threat records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Exported %d threat records to %s and %s", result.ThreatCount, result.JSONPath, result.CSVPath)
	return c.JSON(result)
}
