package model

import "github.com/lib/pq"

// CatalogMeta 目录的全局信息 (只有一行)
type CatalogMeta struct {
	ID             uint           `gorm:"primaryKey"`
	Floors         pq.StringArray `gorm:"type:text[]"` // 有序楼层列表
	GroundFloor    string         `gorm:"not null"`
	ParkingKeyword string
	EntranceX      float64
	EntranceY      float64
	StoresPerFloor int
}

// WaypointRow 对应 waypoints 表中的一行
type WaypointRow struct {
	ID       uint   `gorm:"primaryKey"`
	Kind     string `gorm:"index;not null"` // transport, entrance, parking_entrance
	Position int    // 同类地标中的顺序, 第一个扶梯用于路线
	Name     string `gorm:"not null"`
	Location string
	HasCoord bool
	X        float64
	Y        float64
}

func (WaypointRow) TableName() string { return "waypoints" }

// PointRow 某一楼层上的一个店铺/兴趣点
type PointRow struct {
	ID    uint   `gorm:"primaryKey"`
	Floor string `gorm:"uniqueIndex:idx_floor_name;not null"`
	Name  string `gorm:"uniqueIndex:idx_floor_name;not null"`
	X     float64
	Y     float64
}

func (PointRow) TableName() string { return "points_of_interest" }

// Operator 维护人员, 用于给渲染端配对令牌
type Operator struct {
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt 哈希
}
