package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/valuecalc/pkg/logger"
)

// WebSocket settings
const (
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxFrameBytes  = 64 * 1024
	readBufferSize = 4096
)

// LiveFrame 클라이언트 → 서버 요청 프레임
type LiveFrame struct {
	Kind  string          `json:"kind"`
	Seq   int64           `json:"seq"`
	Input json.RawMessage `json:"input"`
}

// LiveReply 서버 → 클라이언트 응답 프레임 (seq로 요청과 매칭)
type LiveReply struct {
	Kind      string      `json:"kind"`
	Seq       int64       `json:"seq"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Condition string      `json:"condition,omitempty"`
	Field     string      `json:"field,omitempty"`
}

// LiveHandler 입력 변경마다 재계산 결과를 돌려주는 WebSocket 엔드포인트
// 프레임 하나 = 독립 계산 하나. 연결 상태는 보관하지 않음
type LiveHandler struct {
	calc     *CalcHandler
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewLiveHandler creates a new live handler sharing the calc registry and cache.
func NewLiveHandler(calcH *CalcHandler, log *logger.Logger) *LiveHandler {
	return &LiveHandler{
		calc: calcH,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: readBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Serve handles GET /ws/calc
func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameBytes)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go h.pingLoop(conn, done)

	h.logger.WithField("remote", r.RemoteAddr).Debug("Live session opened")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.WithError(err).Warn("Live session read error")
			}
			return
		}

		reply := h.handleFrame(msg)

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.WithError(err).Warn("Live session write error")
			return
		}
	}
}

// handleFrame never fails the session; every problem becomes an error reply.
func (h *LiveHandler) handleFrame(msg []byte) LiveReply {
	var frame LiveFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		return LiveReply{Error: "invalid frame: " + err.Error()}
	}

	reply := LiveReply{Kind: frame.Kind, Seq: frame.Seq}

	result, _, err := h.calc.run(frame.Kind, frame.Input)
	if err != nil {
		switch statusFor(err) {
		case http.StatusUnprocessableEntity:
			body := conditionBody(err)
			reply.Error = body.Error
			reply.Condition = body.Condition
			reply.Field = body.Field
		case http.StatusBadRequest:
			reply.Error = err.Error()
		default:
			h.logger.WithError(err).WithField("kind", frame.Kind).Error("Live calculation failed")
			reply.Error = "internal error"
		}
		return reply
	}

	reply.Data = result
	return reply
}

func (h *LiveHandler) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
