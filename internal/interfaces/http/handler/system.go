package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoestore/backend/internal/infrastructure/persistence"
	"github.com/shoestore/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and diagnostics endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string         `json:"status"`
	App      string         `json:"app"`
	Uptime   string         `json:"uptime"`
	Database DatabaseHealth `json:"database"`
}

// DatabaseHealth reports database connectivity and pool usage
type DatabaseHealth struct {
	Status          string `json:"status"`
	OpenConnections int    `json:"open_connections,omitempty"`
	InUse           int    `json:"in_use,omitempty"`
	Idle            int    `json:"idle,omitempty"`
}

// Health reports liveness. A database failure degrades the response to
// 503 so load balancers stop routing here.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		App:    h.appName,
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
		Database: DatabaseHealth{
			Status: "ok",
		},
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database.Status = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
		return
	}

	if stats, err := h.db.Stats(); err == nil {
		resp.Database.OpenConnections = stats.OpenConnections
		resp.Database.InUse = stats.InUse
		resp.Database.Idle = stats.Idle
	}

	h.Success(c, resp)
}
