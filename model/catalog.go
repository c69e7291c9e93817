package model

// CatalogData 用于解析整个 catalog.json 文件
type CatalogData struct {
	Meta             map[string]interface{}          `json:"meta,omitempty"` // 存版本号等元数据
	Floors           []Floor                         `json:"floors"`         // 有序楼层列表
	GroundFloor      Floor                           `json:"ground_floor"`
	ParkingKeyword   string                          `json:"parking_keyword,omitempty"` // 楼层名包含该词即视为停车层
	EntrancePoint    Coordinate                      `json:"entrance_point"`            // 所有路线的起点
	Transports       []Waypoint                      `json:"transports"`
	Entrances        []Waypoint                      `json:"entrances"`
	ParkingEntrances []Waypoint                      `json:"parking_entrances"`
	Points           map[Floor]map[string]Coordinate `json:"points_of_interest"`
	StoresPerFloor   int                             `json:"stores_per_floor,omitempty"` // 目录生成器每层生成的店铺数
}

// 默认值
const (
	DefaultParkingKeyword = "Otopark"
	DefaultStoresPerFloor = 20
)

// Waypoint 类型, 用于数据库中区分地标
const (
	KindTransport       = "transport"
	KindEntrance        = "entrance"
	KindParkingEntrance = "parking_entrance"
)
