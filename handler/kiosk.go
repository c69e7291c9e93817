package handler

import (
	"errors"
	"net/http"
	"sync"

	"avm-navigator/directory"
	"avm-navigator/model"
	"avm-navigator/navigation"

	"github.com/gin-gonic/gin"
)

// Kiosk 渲染端访问导航会话的 HTTP 接口
//
// 所有输入事件经 mu 串行处理, 按到达顺序执行。
type Kiosk struct {
	mu        sync.Mutex
	session   *navigation.Session
	generator *directory.Generator
	hub       *Hub
	auth      *Auth
}

// NewKiosk auth 为 nil 时修改选择的接口不需要令牌
func NewKiosk(session *navigation.Session, auth *Auth) *Kiosk {
	k := &Kiosk{
		session:   session,
		generator: directory.NewGenerator(session.Catalog()),
		hub:       NewHub(),
		auth:      auth,
	}
	// 每次选择变化后推送给所有渲染端
	session.Subscribe(func(snap navigation.Snapshot) {
		k.hub.Broadcast(Message{Type: MessageTypeState, Payload: snap})
	})
	return k
}

// FloorRequest 切换楼层请求
type FloorRequest struct {
	Floor string `json:"floor" binding:"required"`
}

// DestinationRequest 选择目的地请求
type DestinationRequest struct {
	Name string `json:"name" binding:"required"`
}

// DirectoryResponse 目录列表
type DirectoryResponse struct {
	Transports       []model.Waypoint `json:"transports"`
	Entrances        []model.Waypoint `json:"entrances"`
	ParkingEntrances []model.Waypoint `json:"parking_entrances"`
}

// RegisterRoutes 配置 API 路由
func (k *Kiosk) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/floors", k.GetFloors)
		api.GET("/floors/:floor/destinations", k.GetDestinations)
		api.GET("/directory", k.GetDirectory)
		api.GET("/state", k.GetState)
		api.GET("/route", k.GetRoute)
		api.GET("/guidance", k.GetGuidance)

		if k.auth != nil {
			api.POST("/pair", k.auth.Pair)
		}

		selection := api.Group("/selection")
		if k.auth != nil {
			selection.Use(k.auth.Middleware())
		}
		{
			selection.POST("/floor", k.SelectFloor)
			selection.POST("/destination", k.SelectDestination)
		}
	}

	r.GET("/ws", k.ServeWS)
}

// GetFloors 获取所有楼层
func (k *Kiosk) GetFloors(c *gin.Context) {
	cat := k.session.Catalog()

	type floorInfo struct {
		Name    string `json:"name"`
		Ground  bool   `json:"ground"`
		Parking bool   `json:"parking"`
	}
	floors := cat.Floors()
	out := make([]floorInfo, 0, len(floors))
	for _, f := range floors {
		out = append(out, floorInfo{Name: f, Ground: cat.IsGround(f), Parking: cat.IsParking(f)})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(out),
		"floors": out,
	})
}

// GetDestinations 获取楼层上可选择的店铺 (目录生成器 + 目录中定义的兴趣点)
func (k *Kiosk) GetDestinations(c *gin.Context) {
	floor := c.Param("floor")
	cat := k.session.Catalog()
	if !cat.HasFloor(floor) {
		c.JSON(http.StatusNotFound, gin.H{"error": "楼层不存在: " + floor})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"floor":   floor,
		"stores":  k.generator.Names(cat, floor),
		"points":  cat.PointsOfInterest(floor),
		"defined": cat.PointNames(floor),
	})
}

// GetDirectory 扶梯、入口、停车场入口列表
func (k *Kiosk) GetDirectory(c *gin.Context) {
	cat := k.session.Catalog()
	c.JSON(http.StatusOK, DirectoryResponse{
		Transports:       cat.TransportWaypoints(),
		Entrances:        cat.Entrances(),
		ParkingEntrances: cat.ParkingEntrances(),
	})
}

// GetState 当前选择及所有派生输出
func (k *Kiosk) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, k.snapshot())
}

// GetRoute 路线坐标序列
func (k *Kiosk) GetRoute(c *gin.Context) {
	snap := k.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"route":    snap.Route,
		"polyline": snap.Polyline,
		"legs":     snap.Legs,
	})
}

// GetGuidance 引导文本
func (k *Kiosk) GetGuidance(c *gin.Context) {
	snap := k.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"floor":    snap.Selection.Floor,
		"guidance": snap.Guidance,
	})
}

// SelectFloor 切换楼层
func (k *Kiosk) SelectFloor(c *gin.Context) {
	var req FloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	snap, err := k.apply(func(s *navigation.Session) error { return s.SelectFloor(req.Floor) })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectDestination 选择目的地, 名称不在目录中也会被接受
func (k *Kiosk) SelectDestination(c *gin.Context) {
	var req DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	snap, err := k.apply(func(s *navigation.Session) error { return s.SelectDestination(req.Name) })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// apply 串行执行一次输入事件, 返回之后的状态
func (k *Kiosk) apply(event func(*navigation.Session) error) (navigation.Snapshot, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := event(k.session); err != nil {
		return navigation.Snapshot{}, err
	}
	return k.session.Snapshot(), nil
}

func (k *Kiosk) snapshot() navigation.Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.session.Snapshot()
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, navigation.ErrUnknownFloor):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case navigation.IsConfigurationError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
