// Package web serves the dashboard page, its JSON API and the live
// WebSocket feed.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"TickerBoard/internal/model"
	"TickerBoard/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CycleCounter reports how many refresh cycles ended in each outcome.
type CycleCounter interface {
	CycleCounts() (map[string]int, error)
}

// Handler serves the display surface.
type Handler struct {
	hub       *Hub
	selection *session.Selection
	onSelect  func(model.Pair)
	journal   CycleCounter
	logger    *zap.Logger
}

// NewHandler creates a handler. onSelect, if non-nil, is called after the
// selection changes so the caller can refresh without waiting for the next tick.
func NewHandler(hub *Hub, sel *session.Selection, onSelect func(model.Pair), logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, selection: sel, onSelect: onSelect, logger: logger}
}

// WithJournal adds cycle outcome counts to the health report.
func (h *Handler) WithJournal(j CycleCounter) *Handler {
	h.journal = j
	return h
}

// SetupRoutes configures all routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(h.logger))
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", h.Page)
	router.GET("/health", h.HealthCheck)
	router.GET("/ws", h.WebSocket)

	api := router.Group("/api/v1")
	api.GET("/pairs", h.GetPairs)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/selection", h.GetSelection)
	api.PUT("/selection", h.PutSelection)

	return router
}

// Server wraps the routes in an http.Server listening on addr.
func (h *Handler) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Shutdown gracefully stops srv and disconnects WebSocket clients.
func (h *Handler) Shutdown(ctx context.Context, srv *http.Server) error {
	h.hub.Close()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type pageData struct {
	View
	Pairs    []model.Pair
	Selected model.Pair
	Metrics  []metric
	Chart    template.HTML
}

type metric struct {
	Label string
	Value string
}

// Page renders the dashboard.
func (h *Handler) Page(c *gin.Context) {
	view := h.hub.View()
	c.HTML(http.StatusOK, "page", pageData{
		View:     view,
		Pairs:    model.SupportedPairs,
		Selected: h.selection.Get(),
		Metrics:  splitMetrics(view.Summary),
		// ChartSVG is produced by chart.Render from titles and series names set in code.
		Chart: template.HTML(view.ChartSVG),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"clients": h.hub.Clients(),
	}
	if h.journal != nil {
		counts, err := h.journal.CycleCounts()
		if err != nil {
			h.logger.Warn("read cycle counts", zap.Error(err))
			resp["status"] = "degraded"
		} else {
			resp["cycles"] = counts
		}
	}
	c.JSON(http.StatusOK, resp)
}

// WebSocket handles GET /ws.
func (h *Handler) WebSocket(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}

// GetPairs handles GET /api/v1/pairs.
func (h *Handler) GetPairs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pairs":    model.SupportedPairs,
		"selected": h.selection.Get(),
	})
}

// GetDashboard handles GET /api/v1/dashboard.
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.hub.View())
}

// GetSelection handles GET /api/v1/selection.
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pair": h.selection.Get()})
}

type selectionRequest struct {
	Pair string `json:"pair" binding:"required"`
}

// PutSelection handles PUT /api/v1/selection.
func (h *Handler) PutSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "pair is required")
		return
	}
	pair, err := model.ParsePair(req.Pair)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	prev, changed, err := h.selection.Set(pair)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if changed {
		h.logger.Info("selection changed", zap.String("from", string(prev)), zap.String("to", string(pair)))
		if h.onSelect != nil {
			h.onSelect(pair)
		}
	}
	c.JSON(http.StatusOK, gin.H{"pair": pair, "changed": changed})
}

func (h *Handler) errorResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"error":      msg,
		"request_id": c.GetString(RequestIDContextKey),
	})
}

// splitMetrics turns "Label: value" lines into label/value pairs.
func splitMetrics(lines []string) []metric {
	out := make([]metric, 0, len(lines))
	for _, line := range lines {
		label, value, ok := strings.Cut(line, ": ")
		if !ok {
			out = append(out, metric{Value: line})
			continue
		}
		out = append(out, metric{Label: label, Value: value})
	}
	return out
}
