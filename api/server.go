package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"helium-explorer/common"
	"helium-explorer/config"
	"helium-explorer/utils"
	"helium-explorer/view"
)

const SessionHeader = "X-Session-ID"

type HeightSource interface {
	GetNowHeight(ctx context.Context) (uint64, error)
}

type Server struct {
	router *gin.Engine
	srv    *http.Server

	views    *view.Registry
	heights  HeightSource
	reporter *utils.Reporter

	logger *zap.SugaredLogger
}

func New(views *view.Registry, heights HeightSource, cfg *config.ServerConfig) *Server {
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg)))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HttpPort),
		Handler: router,
	}

	s := &Server{
		router:   router,
		srv:      srv,
		views:    views,
		heights:  heights,
		reporter: utils.NewReporter(100, 10*time.Minute, reportPages),
		logger:   zap.S().Named("[api]"),
	}
	s.routes()
	return s
}

func reportPages(rs utils.ReporterState) string {
	return fmt.Sprintf("Served [%d] transaction pages in [%.2fs], [%s] in total",
		rs.CountInc, rs.ElapsedTime, common.FormatCount(uint64(rs.Count)))
}

func corsConfig(cfg *config.ServerConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", SessionHeader},
		ExposeHeaders: []string{SessionHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	return corsCfg
}

func (s *Server) routes() {
	s.router.GET("/blocks/hash/:hash", s.getBlock)
	s.router.POST("/blocks/hash/:hash/more", s.loadMore)
	s.router.GET("/blocks/height/:height", s.getBlockByHeight)
	s.router.GET("/blocks/latest", s.latestHeight)
	s.router.GET("/status", s.status)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	s.logger.Infof("API server listening on [%s]", s.srv.Addr)
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		panic(err)
	}
}

// Report logs page throughput, called periodically.
func (s *Server) Report() {
	s.logger.Infof("Status report, sessions [%d], %s", s.views.Len(), s.reporter.Report())
}

func (s *Server) EvictIdle(maxIdle time.Duration) {
	if evicted := s.views.EvictIdle(maxIdle); evicted > 0 {
		s.logger.Infof("Evicted [%d] idle sessions, [%d] left", evicted, s.views.Len())
	}
}

// sessionView returns the view bound to the caller's session. Requests
// without a session ID, or with one that is not a UUID, get a new session.
// Sessions only leave the registry through idle eviction or the registry
// size limit, so clients are expected to echo the returned header.
func (s *Server) sessionView(c *gin.Context) *view.View {
	id, err := uuid.Parse(c.GetHeader(SessionHeader))
	if err != nil {
		id = uuid.New()
	}
	c.Header(SessionHeader, id.String())
	return s.views.Get(id.String())
}

func (s *Server) getBlock(c *gin.Context) {
	v := s.sessionView(c)
	err := v.Navigate(c.Request.Context(), c.Param("hash"))
	s.respond(c, v, err)
}

func (s *Server) getBlockByHeight(c *gin.Context) {
	height, err := strconv.ParseUint(c.Param("height"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "height must be a non-negative integer",
		})
		return
	}

	v := s.sessionView(c)
	err = v.LoadHeight(c.Request.Context(), height)
	s.respond(c, v, err)
}

func (s *Server) loadMore(c *gin.Context) {
	v := s.sessionView(c)

	hash := c.Param("hash")
	if shown := v.State().Hash; shown != hash {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("session shows block [%s], not [%s]", shown, hash),
		})
		return
	}

	err := v.LoadMore(c.Request.Context())
	if err == nil {
		if shouldReport, reportContent := s.reporter.Add(1); shouldReport {
			s.logger.Info(reportContent)
		}
	}
	s.respond(c, v, err)
}

func (s *Server) latestHeight(c *gin.Context) {
	height, err := s.heights.GetNowHeight(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"height": height,
	})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": s.views.Len(),
	})
}

func (s *Server) respond(c *gin.Context, v *view.View, err error) {
	resp := newBlockViewResponse(v.State())
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusOf(err), resp)
}
