package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"avm-navigator/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	want := []model.Floor{"B2 Otopark", "B1 Otopark", "Zemin Kat", "1. Kat", "2. Kat"}
	if got := c.Floors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected floors %v, got %v", want, got)
	}
	if c.GroundFloor() != "Zemin Kat" {
		t.Errorf("Expected ground floor Zemin Kat, got %s", c.GroundFloor())
	}
	if c.EntranceWaypoint() != (model.Coordinate{X: 50, Y: 250}) {
		t.Errorf("Unexpected entrance %v", c.EntranceWaypoint())
	}

	w, err := c.PrimaryTransportWaypoint()
	if err != nil {
		t.Fatalf("PrimaryTransportWaypoint failed: %v", err)
	}
	if w.Name != "Yürüyen Merdiven A" || *w.Coord != (model.Coordinate{X: 200, Y: 200}) {
		t.Errorf("Expected first escalator, got %+v", w)
	}

	if n := len(c.TransportWaypoints()); n != 2 {
		t.Errorf("Expected 2 transports, got %d", n)
	}
	if n := len(c.Entrances()); n != 2 {
		t.Errorf("Expected 2 entrances, got %d", n)
	}
	if n := len(c.ParkingEntrances()); n != 2 {
		t.Errorf("Expected 2 parking entrances, got %d", n)
	}
}

func TestPointsOfInterest(t *testing.T) {
	c := Default()

	pois := c.PointsOfInterest("Zemin Kat")
	if len(pois) != 3 {
		t.Fatalf("Expected 3 points on ground floor, got %d", len(pois))
	}
	if pois["Mağaza 1"] != (model.Coordinate{X: 100, Y: 100}) {
		t.Errorf("Unexpected coordinate for Mağaza 1: %v", pois["Mağaza 1"])
	}

	// 没有数据的楼层返回空 map 而不是错误
	for _, floor := range []model.Floor{"B2 Otopark", "2. Kat", "Yok Kat"} {
		if got := c.PointsOfInterest(floor); got == nil || len(got) != 0 {
			t.Errorf("Expected empty map for %s, got %v", floor, got)
		}
	}

	want := []string{"Mağaza 21", "Mağaza 22"}
	if got := c.PointNames("1. Kat"); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected names %v, got %v", want, got)
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	c := Default()

	pois := c.PointsOfInterest("Zemin Kat")
	pois["Mağaza 1"] = model.Coordinate{X: 1, Y: 1}
	delete(pois, "Mağaza 2")

	floors := c.Floors()
	floors[0] = "changed"

	transports := c.TransportWaypoints()
	transports[0].Coord.X = 999

	if coord, _ := c.Lookup("Zemin Kat", "Mağaza 1"); coord != (model.Coordinate{X: 100, Y: 100}) {
		t.Errorf("Catalog point mutated through copy: %v", coord)
	}
	if _, ok := c.Lookup("Zemin Kat", "Mağaza 2"); !ok {
		t.Error("Catalog point deleted through copy")
	}
	if c.Floors()[0] != "B2 Otopark" {
		t.Error("Catalog floors mutated through copy")
	}
	w, _ := c.PrimaryTransportWaypoint()
	if w.Coord.X != 200 {
		t.Errorf("Catalog transport mutated through copy: %v", w.Coord)
	}
}

func TestFloorClassification(t *testing.T) {
	c := Default()

	tests := []struct {
		floor   model.Floor
		ground  bool
		parking bool
		index   int
	}{
		{"B2 Otopark", false, true, 0},
		{"B1 Otopark", false, true, 1},
		{"Zemin Kat", true, false, 2},
		{"1. Kat", false, false, 3},
		{"2. Kat", false, false, 4},
		{"Çatı", false, false, -1},
	}
	for _, tt := range tests {
		if got := c.IsGround(tt.floor); got != tt.ground {
			t.Errorf("IsGround(%s): expected %v, got %v", tt.floor, tt.ground, got)
		}
		if got := c.IsParking(tt.floor); got != tt.parking {
			t.Errorf("IsParking(%s): expected %v, got %v", tt.floor, tt.parking, got)
		}
		if got := c.FloorIndex(tt.floor); got != tt.index {
			t.Errorf("FloorIndex(%s): expected %d, got %d", tt.floor, tt.index, got)
		}
		if got := c.HasFloor(tt.floor); got != (tt.index >= 0) {
			t.Errorf("HasFloor(%s): expected %v, got %v", tt.floor, tt.index >= 0, got)
		}
	}
}

func TestNewRejectsMalformedData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.CatalogData)
	}{
		{"no floors", func(d *model.CatalogData) { d.Floors = nil }},
		{"duplicate floor", func(d *model.CatalogData) { d.Floors = append(d.Floors, "1. Kat") }},
		{"empty floor name", func(d *model.CatalogData) { d.Floors[1] = "" }},
		{"ground not listed", func(d *model.CatalogData) { d.GroundFloor = "Lobi" }},
		{"negative entrance", func(d *model.CatalogData) { d.EntrancePoint = model.Coordinate{X: -1, Y: 0} }},
		{"nan point", func(d *model.CatalogData) {
			d.Points["Zemin Kat"]["Mağaza 1"] = model.Coordinate{X: math.NaN(), Y: 1}
		}},
		{"point on unknown floor", func(d *model.CatalogData) {
			d.Points["Çatı"] = map[string]model.Coordinate{"Kafe": {X: 1, Y: 1}}
		}},
		{"infinite transport", func(d *model.CatalogData) {
			d.Transports[1].Coord = &model.Coordinate{X: math.Inf(1), Y: 0}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := DefaultData()
			tt.mutate(&data)
			_, err := New(data)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestPrimaryTransportWaypointMissing(t *testing.T) {
	data := DefaultData()
	data.Transports = nil
	c, err := New(data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := c.PrimaryTransportWaypoint(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration, got %v", err)
	}

	data = DefaultData()
	data.Transports = []model.Waypoint{{Name: "Asansör", Location: "Merkez"}}
	c, err = New(data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := c.PrimaryTransportWaypoint(); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for transport without coordinate, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	data := DefaultData()
	data.ParkingKeyword = ""
	data.StoresPerFloor = 0
	c, err := New(data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !c.IsParking("B1 Otopark") {
		t.Error("Expected default parking keyword to apply")
	}
	if c.StoresPerFloor() != model.DefaultStoresPerFloor {
		t.Errorf("Expected %d stores per floor, got %d", model.DefaultStoresPerFloor, c.StoresPerFloor())
	}
}

func TestLoadFromJSON(t *testing.T) {
	c, err := LoadFromJSON(filepath.Join("..", "catalog.json"))
	if err != nil {
		t.Fatalf("LoadFromJSON failed: %v", err)
	}
	if !reflect.DeepEqual(c.Data(), Default().Data()) {
		t.Errorf("catalog.json differs from built-in data:\n%+v\n%+v", c.Data(), Default().Data())
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromJSON(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}
	if _, err := LoadFromJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
