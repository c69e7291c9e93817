package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"avm-navigator/navigation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// kiosk 渲染端与服务运行在同一台设备上
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS 渲染端订阅状态变化, 也可以通过同一连接发送输入事件
// 启用配对时需要 ?token=
func (k *Kiosk) ServeWS(c *gin.Context) {
	if k.auth != nil {
		if _, err := k.auth.Verify(c.Query("token")); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 Token"})
			return
		}
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	conn := newConn(ws)
	k.hub.add(conn)
	go conn.writePump()
	log.Printf("渲染端 %s 已连接 (%s)", conn.id, ws.RemoteAddr())

	conn.Send(Message{Type: MessageTypeState, Payload: k.snapshot()})
	k.readPump(conn)

	k.hub.remove(conn)
	log.Printf("渲染端 %s 已断开", conn.id)
}

// readPump 处理渲染端发来的输入事件, 直到连接关闭
func (k *Kiosk) readPump(conn *Conn) {
	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("读取渲染端消息失败: %v", err)
			}
			return
		}

		if err := k.handleMessage(data); err != nil {
			conn.Send(Message{Type: MessageTypeError, Payload: err.Error()})
		}
	}
}

// handleMessage 成功时状态由会话观察者广播
func (k *Kiosk) handleMessage(data []byte) error {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}

	switch msg.Type {
	case MessageTypeSelectFloor:
		var req FloorRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, err := k.apply(func(s *navigation.Session) error { return s.SelectFloor(req.Floor) })
		return err
	case MessageTypeSelectDestination:
		var req DestinationRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, err := k.apply(func(s *navigation.Session) error { return s.SelectDestination(req.Name) })
		return err
	default:
		return fmt.Errorf("未知的消息类型: %s", msg.Type)
	}
}
