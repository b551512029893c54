package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/app"
	"github.com/sboyar/huddle/internal/config"
	"github.com/sboyar/huddle/internal/core"
	"github.com/sboyar/huddle/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

const sendBuffer = 32

// Controller upgrades HTTP requests to WebSocket sessions and feeds
// decoded signaling events into the router.
type Controller struct {
	router     *app.Router
	joins      *JoinRateLimiter
	readLimit  int64
	pingPeriod time.Duration
}

func NewController(router *app.Router, cfg *config.Config) *Controller {
	return &Controller{
		router:     router,
		joins:      NewJoinRateLimiter(cfg.JoinLimit, cfg.JoinInterval),
		readLimit:  cfg.ReadLimit,
		pingPeriod: cfg.PingPeriod,
	}
}

// wsSignalConn adapts one gorilla/websocket connection to core.SignalConnection.
type wsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal accepts one client. The connection id is minted here and
// never reused; it is the peer's address for the whole session.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	id := domain.ConnID(uuid.NewString())
	conn := &wsSignalConn{
		conn: ws,
		send: make(chan core.Frame, sendBuffer),
	}
	ctl.router.Accept(id, conn)
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, id, conn)
}
