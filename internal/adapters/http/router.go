package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/adapters/signal"
	"github.com/sboyar/huddle/internal/app"
	"github.com/sboyar/huddle/internal/config"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware tags each browser with a stable token used for
// log correlation across reconnects. It carries no authority.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, rt *app.Router) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("HuddleSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	ctrl := signal.NewController(rt, cfg)
	iceServers := toICEServers(cfg.ICEServers)

	api := r.Group("/api")

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString("client_token")).Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	api.GET("/status", func(c *gin.Context) {
		rooms, conns := rt.Stats()
		c.JSON(http.StatusOK, gin.H{
			"rooms":       rooms,
			"connections": conns,
		})
	})

	api.GET("/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceServers})
	})

	return r
}

// toICEServers maps config entries onto the pion wire type, which is what
// browsers expect in RTCPeerConnection configuration.
func toICEServers(entries []config.ICEServer) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(entries))
	for _, e := range entries {
		s := webrtc.ICEServer{
			URLs:     e.URLs,
			Username: e.Username,
		}
		if e.Credential != "" {
			s.Credential = e.Credential
		}
		out = append(out, s)
	}
	return out
}
