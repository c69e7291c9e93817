package db

import (
	"sort"

	"avm-navigator/model"

	"github.com/lib/pq"
)

// ToRows 把目录数据拆成数据库行
func ToRows(data model.CatalogData) (model.CatalogMeta, []model.WaypointRow, []model.PointRow) {
	meta := model.CatalogMeta{
		ID:             1,
		Floors:         pq.StringArray(data.Floors),
		GroundFloor:    data.GroundFloor,
		ParkingKeyword: data.ParkingKeyword,
		EntranceX:      data.EntrancePoint.X,
		EntranceY:      data.EntrancePoint.Y,
		StoresPerFloor: data.StoresPerFloor,
	}

	var waypoints []model.WaypointRow
	add := func(kind string, list []model.Waypoint) {
		for i, w := range list {
			row := model.WaypointRow{Kind: kind, Position: i, Name: w.Name, Location: w.Location}
			if w.Coord != nil {
				row.HasCoord = true
				row.X, row.Y = w.Coord.X, w.Coord.Y
			}
			waypoints = append(waypoints, row)
		}
	}
	add(model.KindTransport, data.Transports)
	add(model.KindEntrance, data.Entrances)
	add(model.KindParkingEntrance, data.ParkingEntrances)

	var points []model.PointRow
	for floor, pois := range data.Points {
		for name, c := range pois {
			points = append(points, model.PointRow{Floor: floor, Name: name, X: c.X, Y: c.Y})
		}
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Floor != points[j].Floor {
			return points[i].Floor < points[j].Floor
		}
		return points[i].Name < points[j].Name
	})

	return meta, waypoints, points
}

// FromRows 由数据库行还原目录数据, 地标按 Position 排序
func FromRows(meta model.CatalogMeta, waypoints []model.WaypointRow, points []model.PointRow) model.CatalogData {
	data := model.CatalogData{
		Floors:           []model.Floor(meta.Floors),
		GroundFloor:      meta.GroundFloor,
		ParkingKeyword:   meta.ParkingKeyword,
		EntrancePoint:    model.Coordinate{X: meta.EntranceX, Y: meta.EntranceY},
		Transports:       []model.Waypoint{},
		Entrances:        []model.Waypoint{},
		ParkingEntrances: []model.Waypoint{},
		Points:           make(map[model.Floor]map[string]model.Coordinate),
		StoresPerFloor:   meta.StoresPerFloor,
	}

	sorted := append([]model.WaypointRow(nil), waypoints...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	for _, row := range sorted {
		w := model.Waypoint{Name: row.Name, Location: row.Location}
		if row.HasCoord {
			w.Coord = &model.Coordinate{X: row.X, Y: row.Y}
		}
		switch row.Kind {
		case model.KindTransport:
			data.Transports = append(data.Transports, w)
		case model.KindEntrance:
			data.Entrances = append(data.Entrances, w)
		case model.KindParkingEntrance:
			data.ParkingEntrances = append(data.ParkingEntrances, w)
		}
	}

	for _, p := range points {
		if data.Points[p.Floor] == nil {
			data.Points[p.Floor] = make(map[string]model.Coordinate)
		}
		data.Points[p.Floor][p.Name] = model.Coordinate{X: p.X, Y: p.Y}
	}

	return data
}
