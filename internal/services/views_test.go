package services

import (
	"testing"
)

func TestPilotViewDefaultsToFirstAircraft(t *testing.T) {
	svc := newTestService(t, newTestConfig(t))
	refreshed(t, svc)

	view, err := svc.PilotView("", 10)
	if err != nil {
		t.Fatalf("PilotView failed: %v", err)
	}
	if view.CurrentAircraft == nil || view.CurrentAircraft.Callsign != "UAL100" {
		t.Fatalf("CurrentAircraft = %+v, want the first scenario aircraft UAL100", view.CurrentAircraft)
	}
	if view.RadarRangeNM != 10 {
		t.Errorf("RadarRangeNM = %f, want 10", view.RadarRangeNM)
	}
	// Every other scenario aircraft sits within a few kilometers.
	if len(view.NearbyAircraft) != 6 {
		t.Errorf("got %d radar contacts, want 6", len(view.NearbyAircraft))
	}
	if len(view.AllDrones) != 9 {
		t.Errorf("AllDrones has %d entries, want 9", len(view.AllDrones))
	}
}

func TestPilotViewSelectsAircraftByCallsign(t *testing.T) {
	svc := newTestService(t, newTestConfig(t))
	refreshed(t, svc)

	view, err := svc.PilotView("DAL201", 10)
	if err != nil {
		t.Fatalf("PilotView failed: %v", err)
	}
	if view.CurrentAircraft.ICAO24 != "TEST001" {
		t.Errorf("selected %s, want TEST001", view.CurrentAircraft.ICAO24)
	}
	for _, threat := range view.Threats {
		if threat.PlaneICAO24 != "TEST001" {
			t.Errorf("threat for %s leaked into DAL201's view", threat.PlaneICAO24)
		}
	}
	if len(view.Threats) != 1 {
		t.Errorf("got %d threats for DAL201, want 1", len(view.Threats))
	}

	if _, err := svc.PilotView("NOSUCH1", 10); err == nil {
		t.Error("PilotView accepted an unknown callsign")
	}
}

func TestPilotViewRespectsRadarRange(t *testing.T) {
	svc := newTestService(t, newTestConfig(t))
	refreshed(t, svc)

	// 0.1 NM keeps only the drone parked on top of UAL100.
	view, err := svc.PilotView("UAL100", 0.1)
	if err != nil {
		t.Fatalf("PilotView failed: %v", err)
	}
	if len(view.NearbyAircraft) != 0 {
		t.Errorf("got %d radar contacts inside 0.1 NM, want 0", len(view.NearbyAircraft))
	}
	if len(view.NearbyDrones) != 1 || view.NearbyDrones[0].DroneID != "DRONE_CRITICAL" {
		t.Fatalf("NearbyDrones = %v, want only DRONE_CRITICAL", view.NearbyDrones)
	}
	contact := view.NearbyDrones[0]
	if contact.RelativePosition != "NE" {
		t.Errorf("RelativePosition = %q, want NE", contact.RelativePosition)
	}
	if contact.Bearing < 0 || contact.Bearing >= 360 {
		t.Errorf("Bearing = %f, want a value in [0, 360)", contact.Bearing)
	}
}

func TestDroneViewGroupsAlertsByDrone(t *testing.T) {
	svc := newTestService(t, newTestConfig(t))
	refreshed(t, svc)

	view, err := svc.DroneView()
	if err != nil {
		t.Fatalf("DroneView failed: %v", err)
	}
	if len(view.Alerts) != 9 {
		t.Fatalf("got %d alert groups, want one per drone", len(view.Alerts))
	}
	first := view.Alerts[0]
	if first.DroneID != "DRONE_CRITICAL" || first.HighestPriority != "critical" {
		t.Errorf("first group = %s/%s, want DRONE_CRITICAL/critical", first.DroneID, first.HighestPriority)
	}
	if first.AlertCount != 1 || len(first.Alerts) != 1 {
		t.Errorf("DRONE_CRITICAL has %d alerts, want 1", first.AlertCount)
	}

	byID := make(map[string]int)
	for i, g := range view.Alerts {
		byID[g.DroneID] = i
		if g.AlertCount != len(g.Alerts) {
			t.Errorf("%s: AlertCount = %d but %d alerts listed", g.DroneID, g.AlertCount, len(g.Alerts))
		}
	}
	// The safe drones carry no alerts and sort last.
	for _, id := range []string{"DRONE_SAFE_1", "DRONE_SAFE_2"} {
		idx, ok := byID[id]
		if !ok {
			t.Fatalf("%s missing from the alert groups", id)
		}
		if idx < 7 {
			t.Errorf("%s sorted at position %d, want after every alerting drone", id, idx)
		}
		if view.Alerts[idx].AlertCount != 0 || view.Alerts[idx].HighestPriority != "" {
			t.Errorf("%s = %+v, want no alerts", id, view.Alerts[idx])
		}
	}
	if view.Alerts[byID["DRONE_HIGH_2"]].HighestPriority != "high" {
		t.Errorf("DRONE_HIGH_2 priority = %q, want high despite its extra low alert",
			view.Alerts[byID["DRONE_HIGH_2"]].HighestPriority)
	}
	if view.Status.SystemStatus != "OPERATIONAL" {
		t.Errorf("embedded status = %q, want OPERATIONAL", view.Status.SystemStatus)
	}
}
