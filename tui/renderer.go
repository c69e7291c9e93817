package tui

import (
	"fmt"
	"strings"

	"avm-navigator/directory"
	"avm-navigator/navigation"

	"github.com/gdamore/tcell/v2"
)

type focusArea int

const (
	focusFloors focusArea = iota
	focusStores
)

const (
	storeColumns = 4
	storeWidth   = 6
	mapHeight    = 12
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleCursor   = tcell.StyleDefault.Underline(true).Bold(true)
	styleRoute    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleEntrance = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleEscalate = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStore    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMuted    = tcell.StyleDefault.Dim(true)
)

// Renderer 终端渲染端, 只读取会话的派生输出
type Renderer struct {
	screen    tcell.Screen
	session   *navigation.Session
	generator *directory.Generator
	plane     Plane

	focus       focusArea
	floorCursor int
	storeCursor int
}

// New 创建渲染端, 会话每次变化后自动重绘
func New(screen tcell.Screen, session *navigation.Session) *Renderer {
	cat := session.Catalog()
	r := &Renderer{
		screen:      screen,
		session:     session,
		generator:   directory.NewGenerator(cat),
		plane:       PlaneFor(cat),
		floorCursor: cat.FloorIndex(session.Selection().Floor),
	}
	session.Subscribe(func(navigation.Snapshot) { r.Draw() })
	return r
}

// Run 事件循环, Esc / Ctrl-C / q 退出
func (r *Renderer) Run() {
	r.Draw()
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		if !r.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent 处理一个输入事件, 返回 false 表示退出
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			if r.focus == focusFloors {
				r.focus = focusStores
			} else {
				r.focus = focusFloors
			}
		case tcell.KeyLeft:
			r.move(-1)
		case tcell.KeyRight:
			r.move(1)
		case tcell.KeyUp:
			if r.focus == focusStores {
				r.move(-storeColumns)
			}
		case tcell.KeyDown:
			if r.focus == focusStores {
				r.move(storeColumns)
			}
		case tcell.KeyEnter:
			r.activate()
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
		r.Draw()

	case *tcell.EventResize:
		r.screen.Sync()
		r.Draw()
	}
	return true
}

func (r *Renderer) move(delta int) {
	if r.focus == focusFloors {
		n := len(r.session.Catalog().Floors())
		r.floorCursor = clamp(r.floorCursor+delta, 0, n-1)
		return
	}
	n := r.generator.StoresPerFloor
	r.storeCursor = clamp(r.storeCursor+delta, 0, n-1)
}

// activate 选择光标下的楼层或店铺, 重绘由会话通知触发
func (r *Renderer) activate() {
	if r.focus == focusFloors {
		floors := r.session.Catalog().Floors()
		r.storeCursor = 0
		r.session.SelectFloor(floors[r.floorCursor])
		return
	}
	entries := r.generator.Names(r.session.Catalog(), r.session.Selection().Floor)
	if r.storeCursor < len(entries) {
		r.session.SelectDestination(entries[r.storeCursor].Name)
	}
}

// Draw 重绘整个屏幕
func (r *Renderer) Draw() {
	r.screen.Clear()
	width, _ := r.screen.Size()
	snap := r.session.Snapshot()
	cat := r.session.Catalog()

	row := 0
	r.text(0, row, "Kat Seçimi", styleTitle)
	row++
	col := 0
	for i, f := range cat.Floors() {
		style := styleDefault
		if f == snap.Selection.Floor {
			style = styleSelected
		}
		if r.focus == focusFloors && i == r.floorCursor {
			style = style.Underline(true).Bold(true)
		}
		label := "[" + f + "]"
		r.text(col, row, label, style)
		col += len([]rune(label)) + 1
	}

	row += 2
	r.text(0, row, fmt.Sprintf("Mağazalar (%s)", snap.Selection.Floor), styleTitle)
	row++
	entries := r.generator.Names(cat, snap.Selection.Floor)
	for i, e := range entries {
		style := styleDefault
		if !e.Resolved {
			style = styleMuted
		}
		if e.Name == snap.Selection.Destination {
			style = styleSelected
		}
		if r.focus == focusStores && i == r.storeCursor {
			style = styleCursor
		}
		r.text((i%storeColumns)*storeWidth, row+i/storeColumns, e.Label, style)
	}
	row += (len(entries)+storeColumns-1)/storeColumns + 1

	r.drawMap(0, row, clamp(width, 10, 80), mapHeight, snap)
	row += mapHeight + 1

	for _, line := range strings.Split(r.session.FormatRoute(), "\n") {
		r.text(0, row, line, styleDefault)
		row++
	}
	if !snap.Selection.HasDestination() {
		r.text(0, row, "Yönlendirme: "+snap.Guidance, styleDefault)
	}

	r.screen.Show()
}

// drawMap 在 (x0, y0) 处画 w x h 的平面图: 路线、入口、扶梯、目的地
func (r *Renderer) drawMap(x0, y0, w, h int, snap navigation.Snapshot) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x0+x, y0+y, '·', nil, styleMuted)
		}
	}
	if !snap.Resolved {
		return
	}

	cells := make([]cell, len(snap.Route))
	for i, pt := range snap.Route {
		cells[i] = scale(pt, r.plane, w, h)
	}
	for i := 1; i < len(cells); i++ {
		for _, c := range rasterLine(cells[i-1], cells[i]) {
			r.screen.SetContent(x0+c.X, y0+c.Y, '•', nil, styleRoute)
		}
	}

	first, last := cells[0], cells[len(cells)-1]
	r.screen.SetContent(x0+first.X, y0+first.Y, '@', nil, styleEntrance)
	if len(cells) == 3 {
		mid := cells[1]
		r.screen.SetContent(x0+mid.X, y0+mid.Y, '#', nil, styleEscalate)
	}
	r.screen.SetContent(x0+last.X, y0+last.Y, '*', nil, styleStore)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
