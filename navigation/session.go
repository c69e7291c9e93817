package navigation

import (
	"errors"
	"fmt"

	"avm-navigator/catalog"
	"avm-navigator/model"

	"github.com/google/uuid"
)

// ErrUnknownFloor 选择了目录中不存在的楼层
var ErrUnknownFloor = fmt.Errorf("%w: 楼层不存在", catalog.ErrConfiguration)

// 引导文本
const (
	GuidanceParking = "En yakın otopark girişi ve yürüyen merdiven kullanılarak zemin kata çıkılabilir."
	GuidanceGround  = "Ana girişlerden yürüyerek ulaşım sağlanabilir."
	GuidanceUpper   = "Zemin kattan yürüyen merdiven ile çıkılabilir."
)

// Session 一个 kiosk 屏幕上的导航会话
//
// 会话只持有 Selection, 坐标、路线和引导文本在每次读取时从目录重新计算。
// Session 不是并发安全的, 调用方需要按顺序处理输入事件。
type Session struct {
	id        string
	catalog   *catalog.Catalog
	transport model.Waypoint
	selection model.Selection

	observers map[int]func(Snapshot)
	nextObs   int
}

// Option 会话选项
type Option func(*Session) error

// WithInitialFloor 指定初始楼层 (默认是地面层)
func WithInitialFloor(floor model.Floor) Option {
	return func(s *Session) error {
		if !s.catalog.HasFloor(floor) {
			return fmt.Errorf("%w: %s", ErrUnknownFloor, floor)
		}
		s.selection.Floor = floor
		return nil
	}
}

// NewSession 创建会话, 目录必须定义至少一个带坐标的扶梯
func NewSession(cat *catalog.Catalog, opts ...Option) (*Session, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: 目录为空", catalog.ErrConfiguration)
	}
	transport, err := cat.PrimaryTransportWaypoint()
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        uuid.NewString(),
		catalog:   cat,
		transport: transport,
		selection: model.Selection{Floor: cat.GroundFloor()},
		observers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Selection 当前选择
func (s *Session) Selection() model.Selection { return s.selection }

// SelectFloor 切换楼层, 总是清空目的地
// 楼层不在目录中时返回 ErrUnknownFloor, 当前选择保持不变
func (s *Session) SelectFloor(floor model.Floor) error {
	if !s.catalog.HasFloor(floor) {
		return fmt.Errorf("%w: %s", ErrUnknownFloor, floor)
	}
	s.selection = model.Selection{Floor: floor}
	s.notify()
	return nil
}

// SelectDestination 选择目的地, 不校验名称是否在目录中
func (s *Session) SelectDestination(name string) error {
	if s.selection.Floor == "" {
		return fmt.Errorf("%w: 请先选择楼层", catalog.ErrConfiguration)
	}
	s.selection.Destination = name
	s.notify()
	return nil
}

// CurrentDestinationCoordinate 当前目的地的坐标, 找不到时 ok 为 false (不是错误)
func (s *Session) CurrentDestinationCoordinate() (model.Coordinate, bool) {
	if !s.selection.HasDestination() {
		return model.Coordinate{}, false
	}
	return s.catalog.Lookup(s.selection.Floor, s.selection.Destination)
}

// ComputeRoute 入口 -> (非地面层时经过扶梯) -> 目的地
// 目的地无法解析时返回空切片
func (s *Session) ComputeRoute() []model.Coordinate {
	dest, ok := s.CurrentDestinationCoordinate()
	if !ok {
		return []model.Coordinate{}
	}

	steps := []model.Coordinate{s.catalog.EntranceWaypoint()}
	if !s.catalog.IsGround(s.selection.Floor) {
		// 多个扶梯时总是使用第一个
		steps = append(steps, *s.transport.Coord)
	}
	return append(steps, dest)
}

// GuidanceText 仅由楼层类型决定的引导文本, 与是否选择目的地无关
func (s *Session) GuidanceText() string {
	switch {
	case s.catalog.IsParking(s.selection.Floor):
		return GuidanceParking
	case s.catalog.IsGround(s.selection.Floor):
		return GuidanceGround
	default:
		return GuidanceUpper
	}
}

// Subscribe 注册观察者, 每次选择变化后调用; 返回取消函数
func (s *Session) Subscribe(fn func(Snapshot)) (cancel func()) {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Session) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.observers {
		fn(snap)
	}
}

// IsConfigurationError 是否为配置错误
func IsConfigurationError(err error) bool {
	return errors.Is(err, catalog.ErrConfiguration)
}
