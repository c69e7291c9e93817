package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"avm-navigator/model"
)

// ErrConfiguration 目录数据配置错误 (数据编写问题, 启动时即应失败)
var ErrConfiguration = errors.New("配置错误")

// Catalog 商场的静态参考数据, 构建后只读
type Catalog struct {
	floors           []model.Floor
	floorIndex       map[model.Floor]int
	groundFloor      model.Floor
	parkingKeyword   string
	entrance         model.Coordinate
	transports       []model.Waypoint
	entrances        []model.Waypoint
	parkingEntrances []model.Waypoint
	points           map[model.Floor]map[string]model.Coordinate
	storesPerFloor   int
}

// New 校验并冻结目录数据
func New(data model.CatalogData) (*Catalog, error) {
	if len(data.Floors) == 0 {
		return nil, fmt.Errorf("%w: 楼层列表为空", ErrConfiguration)
	}

	c := &Catalog{
		floors:         append([]model.Floor(nil), data.Floors...),
		floorIndex:     make(map[model.Floor]int, len(data.Floors)),
		groundFloor:    data.GroundFloor,
		parkingKeyword: data.ParkingKeyword,
		entrance:       data.EntrancePoint,
		points:         make(map[model.Floor]map[string]model.Coordinate),
		storesPerFloor: data.StoresPerFloor,
	}
	if c.parkingKeyword == "" {
		c.parkingKeyword = model.DefaultParkingKeyword
	}
	if c.storesPerFloor <= 0 {
		c.storesPerFloor = model.DefaultStoresPerFloor
	}

	for i, f := range data.Floors {
		if f == "" {
			return nil, fmt.Errorf("%w: 第 %d 个楼层名为空", ErrConfiguration, i+1)
		}
		if _, dup := c.floorIndex[f]; dup {
			return nil, fmt.Errorf("%w: 楼层重复: %s", ErrConfiguration, f)
		}
		c.floorIndex[f] = i
	}
	if _, ok := c.floorIndex[c.groundFloor]; !ok {
		return nil, fmt.Errorf("%w: 地面层 %q 不在楼层列表中", ErrConfiguration, c.groundFloor)
	}
	if err := c.entrance.Validate(); err != nil {
		return nil, fmt.Errorf("%w: 入口: %v", ErrConfiguration, err)
	}

	var err error
	if c.transports, err = copyWaypoints("扶梯", data.Transports); err != nil {
		return nil, err
	}
	if c.entrances, err = copyWaypoints("入口", data.Entrances); err != nil {
		return nil, err
	}
	if c.parkingEntrances, err = copyWaypoints("停车场入口", data.ParkingEntrances); err != nil {
		return nil, err
	}

	for floor, pois := range data.Points {
		if _, ok := c.floorIndex[floor]; !ok {
			return nil, fmt.Errorf("%w: 兴趣点所在楼层 %q 不在楼层列表中", ErrConfiguration, floor)
		}
		m := make(map[string]model.Coordinate, len(pois))
		for name, coord := range pois {
			if name == "" {
				return nil, fmt.Errorf("%w: %s 有空名称的兴趣点", ErrConfiguration, floor)
			}
			if err := coord.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %v", ErrConfiguration, floor, name, err)
			}
			m[name] = coord
		}
		c.points[floor] = m
	}

	return c, nil
}

// LoadFromJSON 从 JSON 文件加载目录数据
func LoadFromJSON(filepath string) (*Catalog, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	var data model.CatalogData
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	return New(data)
}

// copyWaypoints 深拷贝地标列表并校验坐标
func copyWaypoints(kind string, src []model.Waypoint) ([]model.Waypoint, error) {
	out := make([]model.Waypoint, 0, len(src))
	for _, w := range src {
		if w.Coord != nil {
			if err := w.Coord.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s %q: %v", ErrConfiguration, kind, w.Name, err)
			}
			coord := *w.Coord
			w.Coord = &coord
		}
		out = append(out, w)
	}
	return out, nil
}

// Floors 有序楼层列表
func (c *Catalog) Floors() []model.Floor {
	return append([]model.Floor(nil), c.floors...)
}

// HasFloor 楼层是否在目录中
func (c *Catalog) HasFloor(floor model.Floor) bool {
	_, ok := c.floorIndex[floor]
	return ok
}

// FloorIndex 楼层在列表中的位置, 不存在时返回 -1
func (c *Catalog) FloorIndex(floor model.Floor) int {
	if i, ok := c.floorIndex[floor]; ok {
		return i
	}
	return -1
}

func (c *Catalog) GroundFloor() model.Floor { return c.groundFloor }

func (c *Catalog) IsGround(floor model.Floor) bool { return floor == c.groundFloor }

// IsParking 楼层名包含停车关键词 (如 "B2 Otopark")
func (c *Catalog) IsParking(floor model.Floor) bool {
	return strings.Contains(floor, c.parkingKeyword)
}

func (c *Catalog) StoresPerFloor() int { return c.storesPerFloor }

// PointsOfInterest 楼层上的兴趣点, 没有数据的楼层返回空 map
func (c *Catalog) PointsOfInterest(floor model.Floor) map[string]model.Coordinate {
	out := make(map[string]model.Coordinate, len(c.points[floor]))
	for name, coord := range c.points[floor] {
		out[name] = coord
	}
	return out
}

// PointNames 楼层上兴趣点名称, 已排序
func (c *Catalog) PointNames(floor model.Floor) []string {
	names := make([]string, 0, len(c.points[floor]))
	for name := range c.points[floor] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup 查询某楼层某兴趣点的坐标
func (c *Catalog) Lookup(floor model.Floor, name string) (model.Coordinate, bool) {
	coord, ok := c.points[floor][name]
	return coord, ok
}

// PrimaryTransportWaypoint 用于路线的扶梯 (列表中的第一个)
func (c *Catalog) PrimaryTransportWaypoint() (model.Waypoint, error) {
	if len(c.transports) == 0 {
		return model.Waypoint{}, fmt.Errorf("%w: 没有定义扶梯", ErrConfiguration)
	}
	w := c.transports[0]
	if w.Coord == nil {
		return model.Waypoint{}, fmt.Errorf("%w: 扶梯 %q 没有坐标", ErrConfiguration, w.Name)
	}
	coord := *w.Coord
	w.Coord = &coord
	return w, nil
}

// EntranceWaypoint 所有路线的起点
func (c *Catalog) EntranceWaypoint() model.Coordinate { return c.entrance }

func (c *Catalog) Entrances() []model.Waypoint { return cloneWaypoints(c.entrances) }

func (c *Catalog) ParkingEntrances() []model.Waypoint { return cloneWaypoints(c.parkingEntrances) }

func (c *Catalog) TransportWaypoints() []model.Waypoint { return cloneWaypoints(c.transports) }

// Data 导出为可序列化的目录数据 (用于写入数据库)
func (c *Catalog) Data() model.CatalogData {
	points := make(map[model.Floor]map[string]model.Coordinate, len(c.points))
	for floor := range c.points {
		points[floor] = c.PointsOfInterest(floor)
	}
	return model.CatalogData{
		Floors:           c.Floors(),
		GroundFloor:      c.groundFloor,
		ParkingKeyword:   c.parkingKeyword,
		EntrancePoint:    c.entrance,
		Transports:       c.TransportWaypoints(),
		Entrances:        c.Entrances(),
		ParkingEntrances: c.ParkingEntrances(),
		Points:           points,
		StoresPerFloor:   c.storesPerFloor,
	}
}

func cloneWaypoints(src []model.Waypoint) []model.Waypoint {
	out, _ := copyWaypoints("", src)
	return out
}
