package services

import (
	"log"

	"skylink/internal/models"
	"skylink/internal/utils"
)

// InstrumentedAirspaceService wraps AirspaceService with Prometheus
// metrics collection around every pass.
type InstrumentedAirspaceService struct {
	*AirspaceService
	metrics *utils.Metrics
}

// NewInstrumentedAirspaceService creates a new instrumented airspace service.
func NewInstrumentedAirspaceService(svc *AirspaceService, m *utils.Metrics) *InstrumentedAirspaceService {
	return &InstrumentedAirspaceService{
		AirspaceService: svc,
		metrics:         m,
	}
}

// Refresh runs a pass and records its outcome.
func (is *InstrumentedAirspaceService) Refresh(mode models.DataMode) (*models.Snapshot, error) {
	snap, err := is.AirspaceService.Refresh(mode)
	if err != nil {
		is.metrics.IncrementPasses(string(mode), "error")
		return nil, err
	}
	is.recordPass(snap)
	return snap, nil
}

// RefreshOnDemand runs a rate-limited pass and records its outcome.
// Throttled requests are counted separately from failed passes.
func (is *InstrumentedAirspaceService) RefreshOnDemand() (*models.Snapshot, error) {
	mode := is.Mode()
	snap, err := is.AirspaceService.RefreshOnDemand()
	if err != nil {
		if err == ErrRefreshThrottled {
			is.metrics.IncrementPasses(string(mode), "throttled")
		} else {
			is.metrics.IncrementPasses(string(mode), "error")
		}
		return nil, err
	}
	is.recordPass(snap)
	return snap, nil
}

// SetMode selects the data mode and records the pass it triggers.
func (is *InstrumentedAirspaceService) SetMode(mode models.DataMode) (*models.Snapshot, error) {
	snap, err := is.AirspaceService.SetMode(mode)
	if err != nil {
		is.metrics.IncrementPasses(string(mode), "error")
		return nil, err
	}
	is.recordPass(snap)
	return snap, nil
}

// ImportDataset imports an archive and records the resulting pass.
func (is *InstrumentedAirspaceService) ImportDataset(archivePath string) (*models.Snapshot, error) {
	snap, err := is.AirspaceService.ImportDataset(archivePath)
	if err != nil {
		is.metrics.IncrementPasses(string(models.ModeReal), "error")
		return nil, err
	}
	is.metrics.IncrementDatasetImports()
	is.recordPass(snap)
	return snap, nil
}

// ExportThreats exports the current pass and records the outcome.
func (is *InstrumentedAirspaceService) ExportThreats() (*ExportResult, error) {
	result, err := is.AirspaceService.ExportThreats()
	if err != nil {
		is.metrics.IncrementExports("error")
		return nil, err
	}
	is.metrics.IncrementExports("ok")
	return result, nil
}

// recordPass publishes gauges and counters describing a finished pass.
func (is *InstrumentedAirspaceService) recordPass(snap *models.Snapshot) {
	is.metrics.IncrementPasses(string(snap.Mode), "ok")
	is.metrics.SetTrackedObjects("aircraft", len(snap.Aircraft))
	is.metrics.SetTrackedObjects("drones", len(snap.Drones))

	summary, err := is.Summary()
	if err != nil {
		log.Printf("Pass summary unavailable for metrics: %v", err)
		return
	}
	for tier, count := range summary.ThreatsByTier {
		is.metrics.SetActiveThreats(tier, count)
	}
	if summary.SkippedPlanes > 0 {
		is.metrics.AddSkippedObjects("aircraft", summary.SkippedPlanes)
	}
	if summary.SkippedDrones > 0 {
		is.metrics.AddSkippedObjects("drones", summary.SkippedDrones)
	}

	status := is.Status()
	if total, ok := status.PassTimings["total"]; ok {
		is.metrics.ObservePassDuration(total)
	}
}
