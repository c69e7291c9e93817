package handler

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// 消息类型
const (
	MessageTypeState             = "state"
	MessageTypeError             = "error"
	MessageTypeSelectFloor       = "select_floor"
	MessageTypeSelectDestination = "select_destination"
)

// Message 渲染端与 kiosk 之间的 WebSocket 消息
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// inboundMessage 渲染端发来的输入事件
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Conn WebSocket 连接, 带发送缓冲
type Conn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, 32),
	}
}

// writePump 把发送缓冲中的消息写到 WebSocket
func (c *Conn) writePump() {
	defer c.ws.Close()

	for message := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

// Send 非阻塞发送, 缓冲满时丢弃这条消息 (下一次状态会覆盖它)
func (c *Conn) Send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
	default:
		log.Printf("渲染端 %s 发送缓冲已满, 丢弃消息", c.id)
	}
	return nil
}

// Hub 管理所有连接的渲染端
type Hub struct {
	conns map[string]*Conn
	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Conn)}
}

func (h *Hub) add(c *Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.conns[c.id] = c
}

func (h *Hub) remove(c *Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.conns[c.id]; ok {
		delete(h.conns, c.id)
		close(c.send)
	}
}

// Len 当前连接数
func (h *Hub) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.conns)
}

// Broadcast 发送给所有渲染端
func (h *Hub) Broadcast(msg Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for id, c := range h.conns {
		if err := c.Send(msg); err != nil {
			log.Printf("推送给渲染端 %s 失败: %v", id, err)
		}
	}
}
