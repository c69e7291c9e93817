package model

import (
	"fmt"
	"math"
)

// Coordinate 平面图上的一个点 (与楼层平面图图片的像素坐标一致)
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate 检查坐标是否有限且非负
func (c Coordinate) Validate() error {
	if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
		return fmt.Errorf("坐标不是有限数: (%v, %v)", c.X, c.Y)
	}
	if c.X < 0 || c.Y < 0 {
		return fmt.Errorf("坐标不能为负: (%v, %v)", c.X, c.Y)
	}
	return nil
}

// String 返回 SVG polyline 使用的 "x,y" 格式
func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.X, c.Y)
}

// Floor 楼层标识, 如 "Zemin Kat", "B2 Otopark"
type Floor = string

// Waypoint 导航地标 (扶梯/电梯、入口、停车场入口)
type Waypoint struct {
	Name     string      `json:"name"`
	Location string      `json:"location"`        // 可读的位置描述, 如 "Sol Orta"
	Coord    *Coordinate `json:"coord,omitempty"` // 仅目录展示用的地标可以没有坐标
}

// Selection 用户当前的选择 (唯一可变的核心状态)
//
// Destination 为空表示未选择目的地。
type Selection struct {
	Floor       Floor  `json:"floor"`
	Destination string `json:"destination,omitempty"`
}

// HasDestination 是否已选择目的地
func (s Selection) HasDestination() bool {
	return s.Destination != ""
}
