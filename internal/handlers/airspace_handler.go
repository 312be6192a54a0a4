package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"skylink/internal/models"
	"skylink/internal/services"
)

const UnknownModeError = "unknown data mode"
const NoSnapshotError = "no snapshot loaded yet"

// AirspaceHandler defines handlers for airspace state and dashboards.
type AirspaceHandler struct {
	Service *services.InstrumentedAirspaceService
}

// NewAirspaceHandler creates a new AirspaceHandler with the given service.
func NewAirspaceHandler(service *services.InstrumentedAirspaceService) *AirspaceHandler {
	return &AirspaceHandler{Service: service}
}

// dataSourceRequest selects the snapshot source for subsequent passes.
type dataSourceRequest struct {
	Mode models.DataMode `json:"mode"`
}

// GetStatus handles GET /status for the main dashboard.
// @Summary System status
// @Description Gets overall airspace system status including the latest pass timings
// @Tags airspace
// @Produce json
// @Success 200 {object} models.SystemStatus "Current system status"
// @Router /status [get]
func (h *AirspaceHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(h.Service.Status())
}

// SetDataSource handles PUT /data-source to select the snapshot source.
// @Summary Select data source
// @Description Selects the test scenario or the real CSV snapshots and runs a pass immediately
// @Tags airspace
// @Accept json
// @Produce json
// @Param request body dataSourceRequest true "Data mode (test or real)"
// @Success 200 {object} models.SystemStatus "Status after the pass"
// @Failure 400 {object} map[string]interface{} "Unknown data mode"
// @Failure 500 {object} map[string]interface{} "Snapshot failed to load"
// @Router /data-source [put]
func (h *AirspaceHandler) SetDataSource(c *fiber.Ctx) error {
	var req dataSourceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error decoding data source request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}
	if !req.Mode.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": UnknownModeError,
		})
	}

	snap, err := h.Service.SetMode(req.Mode)
	if err != nil {
		log.Printf("Error switching data source to %s: %v", req.Mode, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Switched to %s mode: %d aircraft, %d drones", req.Mode, len(snap.Aircraft), len(snap.Drones))
	return c.JSON(h.Service.Status())
}

// Refresh handles POST /refresh to run an on-demand pass.
// @Summary Run a classification pass
// @Description Reloads the current mode's snapshot and reruns the proximity classification
// @Tags airspace
// @Produce json
// @Success 200 {object} models.SystemStatus "Status after the pass"
// @Failure 429 {object} map[string]interface{} "Refresh rate limit exceeded"
// @Failure 500 {object} map[string]interface{} "Snapshot failed to load"
// @Router /refresh [post]
func (h *AirspaceHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.Service.RefreshOnDemand()
	if err != nil {
		if err == services.ErrRefreshThrottled {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		log.Printf("Error refreshing snapshot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Refreshed %s snapshot %s: %d aircraft, %d drones", snap.Mode, snap.ID, len(snap.Aircraft), len(snap.Drones))
	return c.JSON(h.Service.Status())
}

// GetPilotView handles GET /pilot for the pilot dashboard.
// @Summary Pilot dashboard data
// @Description Gets the selected aircraft, its radar picture, and the threats involving it
// @Tags airspace
// @Produce json
// @Param callsign query string false "Aircraft callsign (defaults to the first aircraft)"
// @Param range query number false "Radar range in nautical miles" default(10)
// @Success 200 {object} models.PilotView "Pilot view"
// @Failure 404 {object} map[string]interface{} "Aircraft not found"
// @Failure 409 {object} map[string]interface{} "No snapshot loaded yet"
// @Router /pilot [get]
func (h *AirspaceHandler) GetPilotView(c *fiber.Ctx) error {
	callsign := c.Query("callsign")
	rangeNM := 10.0
	if v := c.Query("range"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "invalid radar range",
			})
		}
		rangeNM = parsed
	}

	view, err := h.Service.PilotView(callsign, rangeNM)
	if err != nil {
		if err == services.ErrNoSnapshot {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": NoSnapshotError,
			})
		}
		log.Printf("Error building pilot view for %q: %v", callsign, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(view)
}

// GetDroneView handles GET /drones for the drone operator dashboard.
// @Summary Drone dashboard data
// @Description Gets all drones and aircraft with threats grouped per drone
// @Tags airspace
// @Produce json
// @Success 200 {object} models.DroneView "Drone operator view"
// @Failure 409 {object} map[string]interface{} "No snapshot loaded yet"
// @Router /drones [get]
func (h *AirspaceHandler) GetDroneView(c *fiber.Ctx) error {
	view, err := h.Service.DroneView()
	if err != nil {
		if err == services.ErrNoSnapshot {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": NoSnapshotError,
			})
		}
		log.Printf("Error building drone view: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(view)
}
