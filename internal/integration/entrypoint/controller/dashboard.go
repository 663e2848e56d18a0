package controller

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/technest/admin-dashboard/internal/application/usecase/dashboard"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
	"github.com/technest/admin-dashboard/internal/integration/entrypoint/dto"
)

const (
	defaultHeartbeatInterval = 15 * time.Second

	eventView      = "view"
	eventHeartbeat = "ping"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	dashboard *dashboard.Dashboard
	heartbeat time.Duration
}

// NewDashboardController creates a new dashboard controller instance.
// A non-positive heartbeat falls back to 15 seconds.
func NewDashboardController(d *dashboard.Dashboard, heartbeat time.Duration) *DashboardController {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}
	return &DashboardController{
		dashboard: d,
		heartbeat: heartbeat,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(c.dashboard.View()))
}

// Stream handles GET /dashboard/stream requests. The dashboard counts as
// visible while at least one stream is connected; every change of the view
// is pushed as a "view" event.
func (c *DashboardController) Stream(ctx *gin.Context) {
	detach := c.dashboard.Attach()
	defer detach()

	changes, stop := c.dashboard.Store().Watch()
	defer stop()

	heartbeat := time.NewTicker(c.heartbeat)
	defer heartbeat.Stop()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	ctx.SSEvent(eventView, dto.ToDashboardResponse(c.dashboard.View()))
	ctx.Writer.Flush()

	done := ctx.Request.Context().Done()
	ctx.Stream(func(io.Writer) bool {
		select {
		case <-done:
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			ctx.SSEvent(eventView, dto.ToDashboardResponse(c.dashboard.View()))
			return true
		case t := <-heartbeat.C:
			ctx.SSEvent(eventHeartbeat, t.UTC().Format(time.RFC3339))
			return true
		}
	})
}

// SetFocus handles PUT /dashboard/focus requests.
func (c *DashboardController) SetFocus(ctx *gin.Context) {
	var req dto.FocusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidFocusPayload.Error(),
			Code:  string(domainerror.ErrCodeInvalidFocusPayload),
		})
		return
	}

	c.dashboard.SetFocus(*req.Active)
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(c.dashboard.View()))
}

// Refresh handles POST /dashboard/refresh requests.
func (c *DashboardController) Refresh(ctx *gin.Context) {
	c.dashboard.Refresh()
	ctx.JSON(http.StatusAccepted, dto.ToDashboardResponse(c.dashboard.View()))
}
