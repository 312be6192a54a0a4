package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"skylink/internal/models"
)

// exportTimestampFormat matches the file naming of the flat-file outputs.
const exportTimestampFormat = "20060102_150405"

// ExportResult reports where a threat export landed.
type ExportResult struct {
	JSONPath    string `json:"json_path"`
	CSVPath     string `json:"csv_path"`
	ThreatCount int    `json:"threat_count"`
}

// exportEnvelope wraps the JSON export with metadata about the pass.
type exportEnvelope struct {
	Metadata struct {
		Timestamp    time.Time       `json:"timestamp"`
		SnapshotID   string          `json:"snapshot_id"`
		Mode         models.DataMode `json:"mode"`
		TotalThreats int             `json:"total_threats"`
		System       string          `json:"system"`
	} `json:"metadata"`
	Threats []models.ThreatRecord `json:"threats"`
}

// ExportThreats writes the current threat list to timestamped JSON and
// CSV files under the configured output directory. An empty threat list
// still produces both files so downstream consumers see every pass.
func (s *AirspaceService) ExportThreats() (*ExportResult, error) {
	s.mu.RLock()
	snap := s.snapshot
	threats := append([]models.ThreatRecord(nil), s.threats...)
	s.mu.RUnlock()
	if snap == nil {
		return nil, ErrNoSnapshot
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create output directory")
	}

	stamp := time.Now().Format(exportTimestampFormat)
	jsonPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("threat_records_%s.json", stamp))
	csvPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("threat_records_%s.csv", stamp))

	if err := writeThreatsJSON(jsonPath, snap, threats); err != nil {
		return nil, err
	}
	if err := writeThreatsCSV(csvPath, threats); err != nil {
		return nil, err
	}

	return &ExportResult{
		JSONPath:    jsonPath,
		CSVPath:     csvPath,
		ThreatCount: len(threats),
	}, nil
}

func writeThreatsJSON(path string, snap *models.Snapshot, threats []models.ThreatRecord) error {
	var envelope exportEnvelope
	envelope.Metadata.Timestamp = time.Now()
	envelope.Metadata.SnapshotID = snap.ID.String()
	envelope.Metadata.Mode = snap.Mode
	envelope.Metadata.TotalThreats = len(threats)
	envelope.Metadata.System = "SkyLink Airspace Proximity Service"
	envelope.Threats = threats

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create JSON export file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return errors.Wrap(err, "failed to write JSON export")
	}
	return nil
}

func writeThreatsCSV(path string, threats []models.ThreatRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create CSV export file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"plane_icao24", "plane_callsign", "drone_id",
		"horizontal_distance_km", "vertical_distance_m", "tier",
		"plane_latitude", "plane_longitude", "plane_altitude_m",
		"drone_latitude", "drone_longitude", "drone_altitude_m",
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, t := range threats {
		record := []string{
			t.PlaneICAO24, t.PlaneCallsign, t.DroneID,
			formatFloat(t.HorizontalDistanceKm), formatFloat(t.VerticalDistanceM), t.Tier,
			formatFloat(t.PlaneLatitude), formatFloat(t.PlaneLongitude), formatFloat(t.PlaneAltitudeM),
			formatFloat(t.DroneLatitude), formatFloat(t.DroneLongitude), formatFloat(t.DroneAltitudeM),
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "failed to write CSV record")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "failed to flush CSV export")
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
