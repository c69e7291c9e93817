package tui

import (
	"math"

	"avm-navigator/catalog"
	"avm-navigator/model"
)

// cell 终端中的一个字符格
type cell struct {
	X, Y int
}

// Plane 平面图的像素范围
type Plane struct {
	Width, Height float64
}

// PlaneFor 覆盖目录中所有坐标的范围, 留 10% 边距
func PlaneFor(cat *catalog.Catalog) Plane {
	p := Plane{Width: 1, Height: 1}
	grow := func(c model.Coordinate) {
		p.Width = math.Max(p.Width, c.X)
		p.Height = math.Max(p.Height, c.Y)
	}

	grow(cat.EntranceWaypoint())
	for _, w := range cat.TransportWaypoints() {
		if w.Coord != nil {
			grow(*w.Coord)
		}
	}
	for _, f := range cat.Floors() {
		for _, c := range cat.PointsOfInterest(f) {
			grow(c)
		}
	}

	p.Width *= 1.1
	p.Height *= 1.1
	return p
}

// scale 把像素坐标映射到 w x h 的字符区域
func scale(c model.Coordinate, plane Plane, w, h int) cell {
	if w <= 0 || h <= 0 {
		return cell{}
	}
	x := int(math.Round(c.X / plane.Width * float64(w-1)))
	y := int(math.Round(c.Y / plane.Height * float64(h-1)))
	return cell{X: clamp(x, 0, w-1), Y: clamp(y, 0, h-1)}
}

// rasterLine Bresenham 直线, 包含两个端点
func rasterLine(a, b cell) []cell {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	var out []cell
	err := dx + dy
	x, y := a.X, a.Y
	for {
		out = append(out, cell{X: x, Y: y})
		if x == b.X && y == b.Y {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
