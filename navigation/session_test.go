package navigation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"avm-navigator/catalog"
	"avm-navigator/model"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(catalog.Default())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSessionInitialState(t *testing.T) {
	s := newTestSession(t)

	sel := s.Selection()
	if sel.Floor != "Zemin Kat" {
		t.Errorf("Expected initial floor Zemin Kat, got %s", sel.Floor)
	}
	if sel.HasDestination() {
		t.Errorf("Expected no initial destination, got %q", sel.Destination)
	}
	if s.ID() == "" {
		t.Error("Expected session id")
	}
	if route := s.ComputeRoute(); len(route) != 0 {
		t.Errorf("Expected empty route, got %v", route)
	}
}

func TestNewSessionWithInitialFloor(t *testing.T) {
	s, err := NewSession(catalog.Default(), WithInitialFloor("1. Kat"))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Selection().Floor != "1. Kat" {
		t.Errorf("Expected 1. Kat, got %s", s.Selection().Floor)
	}

	if _, err := NewSession(catalog.Default(), WithInitialFloor("Çatı")); !errors.Is(err, ErrUnknownFloor) {
		t.Errorf("Expected ErrUnknownFloor, got %v", err)
	}
}

func TestNewSessionRequiresTransport(t *testing.T) {
	data := catalog.DefaultData()
	data.Transports = nil
	cat, err := catalog.New(data)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	if _, err := NewSession(cat); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
	if _, err := NewSession(nil); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error for nil catalog, got %v", err)
	}
}

func TestSelectFloorClearsDestination(t *testing.T) {
	s := newTestSession(t)
	cat := s.Catalog()

	for _, f := range cat.Floors() {
		if err := s.SelectDestination("Mağaza 1"); err != nil {
			t.Fatalf("SelectDestination failed: %v", err)
		}
		if err := s.SelectFloor(f); err != nil {
			t.Fatalf("SelectFloor(%s) failed: %v", f, err)
		}
		if s.Selection().HasDestination() {
			t.Errorf("Expected destination cleared after SelectFloor(%s)", f)
		}
	}
}

func TestStaleDestinationDoesNotResolve(t *testing.T) {
	s := newTestSession(t)
	s.SelectDestination("Mağaza 1")
	if _, ok := s.CurrentDestinationCoordinate(); !ok {
		t.Fatal("Expected Mağaza 1 to resolve on ground floor")
	}

	s.SelectFloor("1. Kat")
	if _, ok := s.CurrentDestinationCoordinate(); ok {
		t.Error("Expected destination to be cleared after floor change")
	}
}

func TestSelectUnknownFloor(t *testing.T) {
	s := newTestSession(t)
	s.SelectDestination("Mağaza 2")
	before := s.Selection()

	err := s.SelectFloor("Çatı")
	if !errors.Is(err, ErrUnknownFloor) {
		t.Errorf("Expected ErrUnknownFloor, got %v", err)
	}
	if !IsConfigurationError(err) {
		t.Errorf("Expected ErrUnknownFloor to be a configuration error")
	}
	if s.Selection() != before {
		t.Errorf("Expected selection unchanged, got %+v", s.Selection())
	}
}

func TestSelectDestinationRequiresFloor(t *testing.T) {
	s := newTestSession(t)
	s.selection.Floor = ""
	if err := s.SelectDestination("Mağaza 1"); !IsConfigurationError(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestResolvedDestinations(t *testing.T) {
	s := newTestSession(t)
	cat := s.Catalog()

	for _, f := range cat.Floors() {
		for name, coord := range cat.PointsOfInterest(f) {
			s.SelectFloor(f)
			s.SelectDestination(name)
			got, ok := s.CurrentDestinationCoordinate()
			if !ok || got != coord {
				t.Errorf("%s/%s: expected %v, got %v (ok=%v)", f, name, coord, got, ok)
			}
		}
	}
}

func TestUnresolvedDestinations(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		floor model.Floor
		name  string
	}{
		{"Zemin Kat", "Mağaza 4"},
		{"Zemin Kat", "Mağaza 21"},
		{"1. Kat", "Mağaza 1"},
		{"2. Kat", "Mağaza 81"},
		{"B2 Otopark", "Mağaza 1"},
	}
	for _, tt := range tests {
		s.SelectFloor(tt.floor)
		if err := s.SelectDestination(tt.name); err != nil {
			t.Fatalf("SelectDestination(%s) failed: %v", tt.name, err)
		}
		if s.Selection().Destination != tt.name {
			t.Errorf("Expected unknown name to be kept, got %q", s.Selection().Destination)
		}
		if _, ok := s.CurrentDestinationCoordinate(); ok {
			t.Errorf("%s/%s: expected unresolved", tt.floor, tt.name)
		}
		if route := s.ComputeRoute(); route == nil || len(route) != 0 {
			t.Errorf("%s/%s: expected empty route, got %v", tt.floor, tt.name, route)
		}
	}
}

func TestGroundFloorRoute(t *testing.T) {
	s := newTestSession(t)
	s.SelectFloor("Zemin Kat")
	s.SelectDestination("Mağaza 1")

	want := []model.Coordinate{{X: 50, Y: 250}, {X: 100, Y: 100}}
	if got := s.ComputeRoute(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected route %v, got %v", want, got)
	}
}

func TestUpperFloorRouteUsesFirstTransport(t *testing.T) {
	s := newTestSession(t)
	s.SelectFloor("1. Kat")
	s.SelectDestination("Mağaza 22")

	want := []model.Coordinate{{X: 50, Y: 250}, {X: 200, Y: 200}, {X: 250, Y: 240}}
	if got := s.ComputeRoute(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected route %v, got %v", want, got)
	}
}

func TestParkingFloorRouteUsesTransport(t *testing.T) {
	data := catalog.DefaultData()
	data.Points["B1 Otopark"] = map[string]model.Coordinate{"Otopark Kasası": {X: 320, Y: 60}}
	cat, err := catalog.New(data)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	s, err := NewSession(cat)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	s.SelectFloor("B1 Otopark")
	s.SelectDestination("Otopark Kasası")
	route := s.ComputeRoute()
	if len(route) != 3 {
		t.Fatalf("Expected 3 points, got %v", route)
	}
	if route[0] != cat.EntranceWaypoint() || route[1] != (model.Coordinate{X: 200, Y: 200}) {
		t.Errorf("Unexpected route %v", route)
	}
}

func TestGuidanceText(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		floor model.Floor
		want  string
	}{
		{"B2 Otopark", GuidanceParking},
		{"B1 Otopark", GuidanceParking},
		{"Zemin Kat", GuidanceGround},
		{"1. Kat", GuidanceUpper},
		{"2. Kat", GuidanceUpper},
	}
	for _, tt := range tests {
		s.SelectFloor(tt.floor)
		if got := s.GuidanceText(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.floor, tt.want, got)
		}
		// 与目的地是否选择无关
		s.SelectDestination("Mağaza 21")
		if got := s.GuidanceText(); got != tt.want {
			t.Errorf("%s with destination: expected %q, got %q", tt.floor, tt.want, got)
		}
		s.SelectDestination("Bilinmeyen")
		if got := s.GuidanceText(); got != tt.want {
			t.Errorf("%s with unknown destination: expected %q, got %q", tt.floor, tt.want, got)
		}
	}
}

func TestSelectFloorIdempotent(t *testing.T) {
	s := newTestSession(t)

	s.SelectFloor("1. Kat")
	first := s.Snapshot()
	s.SelectFloor("1. Kat")
	second := s.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical snapshots:\n%+v\n%+v", first, second)
	}
}

func TestSubscribe(t *testing.T) {
	s := newTestSession(t)

	var got []Snapshot
	cancel := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	s.SelectFloor("1. Kat")
	s.SelectDestination("Mağaza 21")
	s.SelectFloor("Çatı") // 失败时不通知

	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
	if got[0].Selection.HasDestination() {
		t.Error("Expected first notification without destination")
	}
	if !got[1].Resolved || len(got[1].Route) != 3 {
		t.Errorf("Expected resolved 3-point route, got %+v", got[1])
	}

	cancel()
	s.SelectFloor("Zemin Kat")
	if len(got) != 2 {
		t.Errorf("Expected no notification after cancel, got %d", len(got))
	}
}

func TestSnapshotAndLegs(t *testing.T) {
	s := newTestSession(t)
	s.SelectFloor("1. Kat")
	s.SelectDestination("Mağaza 21")

	snap := s.Snapshot()
	if snap.Polyline != "50,250 200,200 150,200" {
		t.Errorf("Unexpected polyline %q", snap.Polyline)
	}
	if snap.Destination == nil || *snap.Destination != (model.Coordinate{X: 150, Y: 200}) {
		t.Errorf("Unexpected destination %v", snap.Destination)
	}
	if len(snap.Legs) != 2 {
		t.Fatalf("Expected 2 legs, got %d", len(snap.Legs))
	}
	if snap.Legs[0].Label != "Yürüyen Merdiven A" || snap.Legs[1].Label != "Mağaza 21" {
		t.Errorf("Unexpected leg labels: %+v", snap.Legs)
	}
	if snap.Legs[1].Distance != 50 {
		t.Errorf("Expected last leg 50px, got %f", snap.Legs[1].Distance)
	}
	if snap.Length != snap.Legs[0].Distance+snap.Legs[1].Distance {
		t.Errorf("Length %f does not match legs", snap.Length)
	}

	s.SelectFloor("2. Kat")
	snap = s.Snapshot()
	if snap.Resolved || snap.Destination != nil || snap.Polyline != "" || len(snap.Legs) != 0 {
		t.Errorf("Expected empty snapshot, got %+v", snap)
	}
	if snap.Guidance != GuidanceUpper {
		t.Errorf("Unexpected guidance %q", snap.Guidance)
	}
}

func TestFormatRoute(t *testing.T) {
	s := newTestSession(t)
	if got := s.FormatRoute(); got != "Bir mağaza seçin." {
		t.Errorf("Unexpected empty-state text %q", got)
	}

	s.SelectDestination("Mağaza 9")
	if got := s.FormatRoute(); !strings.Contains(got, "bulunamadı") {
		t.Errorf("Expected not-found text, got %q", got)
	}

	s.SelectDestination("Mağaza 1")
	got := s.FormatRoute()
	for _, want := range []string{"Mağaza 1", "Kat: Zemin Kat", GuidanceGround} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %q", want, got)
		}
	}
}
