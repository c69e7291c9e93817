package utils

import (
	"math"

	"avm-navigator/model"
)

// Distance 平面图上两点的欧氏距离 (像素)
// 用于路线分段长度的展示, 不参与路线选择
func Distance(p1, p2 model.Coordinate) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PathLength 折线总长度
func PathLength(points []model.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
