package directory

import (
	"fmt"

	"avm-navigator/catalog"
	"avm-navigator/model"
)

// Entry 目录中一个可选择的店铺按钮
type Entry struct {
	Name     string `json:"name"`     // 传给 SelectDestination 的名称
	Label    string `json:"label"`    // 按钮上的短标签, 如 "M3"
	Resolved bool   `json:"resolved"` // 目录中是否有坐标
}

// Generator 按楼层位置生成店铺名称
//
// 名称按 "Mağaza {i+1+楼层序号*每层数量}" 编号, 可能超出目录中定义的兴趣点。
type Generator struct {
	StoresPerFloor int
}

// NewGenerator 使用目录中配置的每层店铺数
func NewGenerator(cat *catalog.Catalog) *Generator {
	return &Generator{StoresPerFloor: cat.StoresPerFloor()}
}

// Names 生成某楼层的店铺列表, 楼层不在目录中时返回空列表
func (g *Generator) Names(cat *catalog.Catalog, floor model.Floor) []Entry {
	index := cat.FloorIndex(floor)
	if index < 0 || g.StoresPerFloor <= 0 {
		return []Entry{}
	}

	entries := make([]Entry, 0, g.StoresPerFloor)
	for i := 0; i < g.StoresPerFloor; i++ {
		name := StoreName(i + 1 + index*g.StoresPerFloor)
		_, ok := cat.Lookup(floor, name)
		entries = append(entries, Entry{
			Name:     name,
			Label:    fmt.Sprintf("M%d", i+1),
			Resolved: ok,
		})
	}
	return entries
}

// StoreName 店铺编号对应的名称
func StoreName(n int) string {
	return fmt.Sprintf("Mağaza %d", n)
}
