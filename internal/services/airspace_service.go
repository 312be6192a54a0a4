package services

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"skylink/internal/classifier"
	"skylink/internal/config"
	"skylink/internal/extraction"
	"skylink/internal/metrics"
	"skylink/internal/models"
	"skylink/internal/repository"
)

// ErrRefreshThrottled is returned when on-demand refreshes arrive faster
// than the configured rate limit.
var ErrRefreshThrottled = fmt.Errorf("refresh rate limit exceeded")

// ErrNoSnapshot is returned by read operations before the first pass.
var ErrNoSnapshot = fmt.Errorf("no snapshot loaded yet")

// ErrUnknownTier is returned when a tier filter does not name a
// configured tier.
var ErrUnknownTier = fmt.Errorf("unknown threat tier")

// AirspaceService runs classification passes over aircraft/drone
// snapshots and serves the resulting threat picture. A pass is a pure
// function of one snapshot and the tier configuration; the service only
// adds snapshot bookkeeping around it.
type AirspaceService struct {
	cfg        *config.Config
	classifier *classifier.Classifier
	planes     repository.AircraftRepository
	drones     repository.DroneRepository
	limiter    *rate.Limiter
	tierRank   map[string]int

	mu          sync.RWMutex
	mode        models.DataMode
	snapshot    *models.Snapshot
	threats     []models.ThreatRecord
	skippedA    int
	skippedB    int
	passTimings map[string]float64

	// CSV paths backing the real mode; replaced by dataset imports.
	aircraftPath string
	dronePath    string
	datasetDir   string
}

// NewAirspaceService creates a new AirspaceService with the given
// repositories and a validated classifier.
func NewAirspaceService(cfg *config.Config, cls *classifier.Classifier, planes repository.AircraftRepository, drones repository.DroneRepository) *AirspaceService {
	rank := make(map[string]int)
	for i, tier := range cls.Tiers() {
		rank[tier.Name] = i
	}
	return &AirspaceService{
		cfg:          cfg,
		classifier:   cls,
		planes:       planes,
		drones:       drones,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RefreshPerSecond), cfg.RefreshBurst),
		tierRank:     rank,
		mode:         cfg.DefaultMode,
		aircraftPath: cfg.AircraftCSVPath,
		dronePath:    cfg.DroneCSVPath,
	}
}

// Tiers returns the configured tier list, tightest first.
func (s *AirspaceService) Tiers() []classifier.Tier {
	return s.classifier.Tiers()
}

// Mode returns the currently selected data mode.
func (s *AirspaceService) Mode() models.DataMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode selects the snapshot source for subsequent passes and runs one
// pass immediately so callers never observe a stale mode.
func (s *AirspaceService) SetMode(mode models.DataMode) (*models.Snapshot, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown data mode %q", mode)
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return s.Refresh(mode)
}

// RefreshOnDemand runs a pass for the current mode, subject to the
// configured rate limit.
func (s *AirspaceService) RefreshOnDemand() (*models.Snapshot, error) {
	if !s.limiter.Allow() {
		return nil, ErrRefreshThrottled
	}
	return s.Refresh(s.Mode())
}

// Refresh loads a fresh snapshot for the given mode, runs one
// classification pass over it, and installs the result as the current
// threat picture.
func (s *AirspaceService) Refresh(mode models.DataMode) (*models.Snapshot, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown data mode %q", mode)
	}

	pm := metrics.NewPassMetrics(uuid.New().String())

	pm.StartLoad()
	snap, err := s.loadSnapshot(mode)
	pm.EndLoad()
	if err != nil {
		return nil, err
	}

	pm.StartClassify()
	result := s.classifier.Evaluate(aircraftTracks(snap.Aircraft), droneTracks(snap.Drones))
	pm.EndClassify()

	threats := s.toThreatRecords(result.Threats, snap.Aircraft)
	pm.SetCounts(len(snap.Aircraft), len(snap.Drones), len(threats), result.SkippedA+result.SkippedB)
	pm.Finalize()

	s.mu.Lock()
	s.snapshot = snap
	s.threats = threats
	s.skippedA = result.SkippedA
	s.skippedB = result.SkippedB
	s.passTimings = pm.TimingsSnapshot()
	s.mu.Unlock()

	return snap, nil
}

// loadSnapshot builds an internally consistent snapshot for one mode.
func (s *AirspaceService) loadSnapshot(mode models.DataMode) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		ID:       uuid.New(),
		Mode:     mode,
		LoadedAt: time.Now(),
	}

	switch mode {
	case models.ModeTest:
		snap.Aircraft, snap.Drones = BuildTestScenario()
	case models.ModeReal:
		s.mu.RLock()
		aircraftPath, dronePath := s.aircraftPath, s.dronePath
		s.mu.RUnlock()

		filter := repository.AircraftFilter{
			ExcludeOnGround: true,
			AltitudeEnabled: s.cfg.AltitudeFilterEnabled,
			MinAltitudeM:    s.cfg.MinAltitudeM,
			MaxAltitudeM:    s.cfg.MaxAltitudeM,
			GeoEnabled:      s.cfg.GeoFilterEnabled,
			MinLat:          s.cfg.GeoMinLat,
			MaxLat:          s.cfg.GeoMaxLat,
			MinLon:          s.cfg.GeoMinLon,
			MaxLon:          s.cfg.GeoMaxLon,
		}
		aircraft, skippedPlanes, err := s.planes.Load(aircraftPath, filter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load aircraft snapshot")
		}
		drones, skippedDrones, err := s.drones.Load(dronePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load drone snapshot")
		}
		snap.Aircraft = aircraft
		snap.Drones = drones
		snap.SkippedRows = skippedPlanes + skippedDrones
	}

	snap.AircraftRows = len(snap.Aircraft)
	snap.DroneRows = len(snap.Drones)
	return snap, nil
}

// ImportDataset installs an uploaded archive's CSVs as the real-mode data
// source and runs one pass over it. The previous imported dataset, if
// any, is removed.
func (s *AirspaceService) ImportDataset(archivePath string) (*models.Snapshot, error) {
	ds, err := extraction.ExtractDataset(archivePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract dataset archive")
	}

	s.mu.Lock()
	oldDir := s.datasetDir
	s.aircraftPath = ds.AircraftCSV
	s.dronePath = ds.DroneCSV
	s.datasetDir = ds.Dir
	s.mode = models.ModeReal
	s.mu.Unlock()

	if oldDir != "" {
		os.RemoveAll(oldDir)
	}

	snap, err := s.Refresh(models.ModeReal)
	if err != nil {
		return nil, errors.Wrap(err, "imported dataset failed to load")
	}
	return snap, nil
}

// Threats returns the current threat list sorted by severity, then by
// horizontal distance. An optional tier name narrows the result.
func (s *AirspaceService) Threats(tier string) ([]models.ThreatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	if tier != "" {
		if _, ok := s.tierRank[tier]; !ok {
			return nil, ErrUnknownTier
		}
	}
	out := make([]models.ThreatRecord, 0, len(s.threats))
	for _, t := range s.threats {
		if tier != "" && t.Tier != tier {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Summary aggregates the current threat picture.
func (s *AirspaceService) Summary() (*models.ThreatSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}

	summary := &models.ThreatSummary{
		TotalThreats:  len(s.threats),
		ThreatsByTier: make(map[string]int),
		SkippedPlanes: s.skippedA,
		SkippedDrones: s.skippedB,
	}
	for _, tier := range s.classifier.Tiers() {
		summary.ThreatsByTier[tier.Name] = 0
	}
	if len(s.threats) == 0 {
		return summary, nil
	}

	planes := make(map[string]bool)
	drones := make(map[string]bool)
	var sumH, sumV float64
	minH, minV := math.Inf(1), math.Inf(1)
	for _, t := range s.threats {
		summary.ThreatsByTier[t.Tier]++
		planes[t.PlaneICAO24] = true
		drones[t.DroneID] = true
		sumH += t.HorizontalDistanceKm
		sumV += t.VerticalDistanceM
		if t.HorizontalDistanceKm < minH {
			minH = t.HorizontalDistanceKm
			summary.ClosestPlaneCallsign = t.PlaneCallsign
			summary.ClosestDroneID = t.DroneID
		}
		if t.VerticalDistanceM < minV {
			minV = t.VerticalDistanceM
		}
	}
	summary.UniquePlanes = len(planes)
	summary.UniqueDrones = len(drones)
	summary.AvgHorizontalKm = sumH / float64(len(s.threats))
	summary.AvgVerticalM = sumV / float64(len(s.threats))
	summary.MinHorizontalKm = minH
	summary.MinVerticalM = minV
	return summary, nil
}

// Status reports the overall system state for the main dashboard.
func (s *AirspaceService) Status() models.SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := models.SystemStatus{
		DataMode:     s.mode,
		SystemStatus: "NO DATA",
	}
	if s.snapshot == nil {
		return status
	}
	status.AircraftCount = len(s.snapshot.Aircraft)
	status.DroneCount = len(s.snapshot.Drones)
	status.ThreatCount = len(s.threats)
	status.SnapshotID = s.snapshot.ID
	status.LastUpdate = s.snapshot.LoadedAt
	status.PassTimings = s.passTimings
	if status.AircraftCount > 0 && status.DroneCount > 0 {
		status.SystemStatus = "OPERATIONAL"
	} else {
		status.SystemStatus = "LIMITED DATA"
	}
	return status
}

// toThreatRecords converts classifier output into interchange records,
// enriching each pair with the aircraft callsign, and sorts them most
// severe first.
func (s *AirspaceService) toThreatRecords(threats []classifier.Threat, aircraft []models.Aircraft) []models.ThreatRecord {
	callsigns := make(map[string]string, len(aircraft))
	for _, a := range aircraft {
		callsigns[a.ICAO24] = strings.TrimSpace(a.Callsign)
	}

	records := make([]models.ThreatRecord, 0, len(threats))
	for _, t := range threats {
		records = append(records, models.ThreatRecord{
			PlaneICAO24:          t.AID,
			PlaneCallsign:        callsigns[t.AID],
			DroneID:              t.BID,
			HorizontalDistanceKm: t.HorizontalKm,
			VerticalDistanceM:    t.VerticalM,
			Tier:                 t.Tier,
			PlaneLatitude:        t.ALatitude,
			PlaneLongitude:       t.ALongitude,
			PlaneAltitudeM:       t.AAltitudeM,
			DroneLatitude:        t.BLatitude,
			DroneLongitude:       t.BLongitude,
			DroneAltitudeM:       t.BAltitudeM,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := s.tierRank[records[i].Tier], s.tierRank[records[j].Tier]
		if ri != rj {
			return ri < rj
		}
		return records[i].HorizontalDistanceKm < records[j].HorizontalDistanceKm
	})
	return records
}

// aircraftTracks maps aircraft into the classifier's neutral shape.
func aircraftTracks(aircraft []models.Aircraft) []classifier.Track {
	tracks := make([]classifier.Track, 0, len(aircraft))
	for _, a := range aircraft {
		tracks = append(tracks, classifier.Track{
			ID:        a.ICAO24,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
			AltitudeM: a.BaroAltitudeM,
		})
	}
	return tracks
}

// droneTracks maps drones into the classifier's neutral shape.
func droneTracks(drones []models.Drone) []classifier.Track {
	tracks := make([]classifier.Track, 0, len(drones))
	for _, d := range drones {
		tracks = append(tracks, classifier.Track{
			ID:        d.ID,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			AltitudeM: d.AltitudeM,
		})
	}
	return tracks
}

// Close releases the imported dataset directory, if any.
func (s *AirspaceService) Close() {
	s.mu.Lock()
	dir := s.datasetDir
	s.datasetDir = ""
	s.mu.Unlock()
	if dir != "" {
		os.RemoveAll(dir)
	}
}
