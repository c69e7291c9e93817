package catalog

import "avm-navigator/model"

// DefaultData 内置的商场数据 (kiosk 出厂配置)
func DefaultData() model.CatalogData {
	return model.CatalogData{
		Meta:           map[string]interface{}{"version": "1"},
		Floors:         []model.Floor{"B2 Otopark", "B1 Otopark", "Zemin Kat", "1. Kat", "2. Kat"},
		GroundFloor:    "Zemin Kat",
		ParkingKeyword: model.DefaultParkingKeyword,
		EntrancePoint:  model.Coordinate{X: 50, Y: 250},
		Transports: []model.Waypoint{
			{Name: "Yürüyen Merdiven A", Location: "Sol Orta", Coord: &model.Coordinate{X: 200, Y: 200}},
			{Name: "Yürüyen Merdiven B", Location: "Sağ Orta", Coord: &model.Coordinate{X: 400, Y: 200}},
		},
		Entrances: []model.Waypoint{
			{Name: "Ana Giriş", Location: "Zemin Kat - Kuzey"},
			{Name: "Yan Giriş", Location: "Zemin Kat - Güney"},
		},
		ParkingEntrances: []model.Waypoint{
			{Name: "Otopark Girişi A", Location: "B2 - Doğu"},
			{Name: "Otopark Girişi B", Location: "B1 - Batı"},
		},
		Points: map[model.Floor]map[string]model.Coordinate{
			"Zemin Kat": {
				"Mağaza 1": {X: 100, Y: 100},
				"Mağaza 2": {X: 200, Y: 120},
				"Mağaza 3": {X: 300, Y: 180},
			},
			"1. Kat": {
				"Mağaza 21": {X: 150, Y: 200},
				"Mağaza 22": {X: 250, Y: 240},
			},
		},
		StoresPerFloor: model.DefaultStoresPerFloor,
	}
}

// Default 内置数据构建的目录
func Default() *Catalog {
	c, err := New(DefaultData())
	if err != nil {
		// 内置数据写错了, 属于编码错误
		panic(err)
	}
	return c
}
