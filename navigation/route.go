package navigation

import (
	"fmt"
	"strings"

	"avm-navigator/model"
	"avm-navigator/utils"
)

// Leg 路线中的一段
type Leg struct {
	From     model.Coordinate `json:"from"`
	To       model.Coordinate `json:"to"`
	Label    string           `json:"label"`    // 终点的名称
	Distance float64          `json:"distance"` // 平面图像素距离
}

// Snapshot 渲染端需要的全部输出
type Snapshot struct {
	SessionID   string             `json:"session_id"`
	Selection   model.Selection    `json:"selection"`
	Destination *model.Coordinate  `json:"destination,omitempty"`
	Resolved    bool               `json:"resolved"`
	Route       []model.Coordinate `json:"route"`
	Polyline    string             `json:"polyline"`
	Legs        []Leg              `json:"legs"`
	Length      float64            `json:"length"`
	Guidance    string             `json:"guidance"`
}

// Snapshot 一次性计算所有派生输出
func (s *Session) Snapshot() Snapshot {
	route := s.ComputeRoute()
	snap := Snapshot{
		SessionID: s.id,
		Selection: s.selection,
		Route:     route,
		Polyline:  Polyline(route),
		Legs:      s.RouteLegs(),
		Length:    utils.PathLength(route),
		Guidance:  s.GuidanceText(),
	}
	if dest, ok := s.CurrentDestinationCoordinate(); ok {
		snap.Destination = &dest
		snap.Resolved = true
	}
	return snap
}

// RouteLegs 路线分段, 每段带终点名称和距离
func (s *Session) RouteLegs() []Leg {
	route := s.ComputeRoute()
	if len(route) < 2 {
		return []Leg{}
	}

	labels := []string{s.selection.Destination}
	if len(route) == 3 {
		labels = []string{s.transport.Name, s.selection.Destination}
	}

	legs := make([]Leg, 0, len(route)-1)
	for i := 0; i < len(route)-1; i++ {
		legs = append(legs, Leg{
			From:     route[i],
			To:       route[i+1],
			Label:    labels[i],
			Distance: utils.Distance(route[i], route[i+1]),
		})
	}
	return legs
}

// Polyline SVG polyline 的 points 属性, 如 "50,250 100,100"
func Polyline(route []model.Coordinate) string {
	parts := make([]string, len(route))
	for i, pt := range route {
		parts[i] = pt.String()
	}
	return strings.Join(parts, " ")
}

// FormatRoute 格式化路线为可读字符串
func (s *Session) FormatRoute() string {
	sel := s.selection
	if _, ok := s.CurrentDestinationCoordinate(); !ok {
		if sel.HasDestination() {
			return fmt.Sprintf("%s (%s) haritada bulunamadı", sel.Destination, sel.Floor)
		}
		return "Bir mağaza seçin."
	}

	legs := s.RouteLegs()
	output := fmt.Sprintf("%s\nKat: %s\n", sel.Destination, sel.Floor)
	output += "Giriş\n"
	for i, leg := range legs {
		output += fmt.Sprintf("%d. %s (%.0f px)\n", i+1, leg.Label, leg.Distance)
	}
	output += "Yönlendirme: " + s.GuidanceText()
	return output
}
