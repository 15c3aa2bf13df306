package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gebedsrooster/metrics"
	"gebedsrooster/services/calendar"
	"gebedsrooster/utils"
)

type ScheduleHandler struct {
	Service calendar.CalendarService
	Metrics *metrics.Metrics
}

func NewScheduleHandler(svc calendar.CalendarService, m *metrics.Metrics) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Metrics: m}
}

// GetScheduleHandler handles GET /api/schedule.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	view, err := h.Service.View(c.Request.Context(), c.Query("includePast") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetStatsHandler handles GET /api/schedule/stats.
func (h *ScheduleHandler) GetStatsHandler(c *gin.Context) {
	occ, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}

// GetOptionsHandler handles GET /api/schedule/options.
func (h *ScheduleHandler) GetOptionsHandler(c *gin.Context) {
	opts, err := h.Service.Options(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

// GetSlotHandler handles GET /api/schedule/slots/:datetime.
func (h *ScheduleHandler) GetSlotHandler(c *gin.Context) {
	datetime, err := parseSlotParam(c.Param("datetime"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_datetime", "datetime must be RFC 3339 or unix milliseconds")
		return
	}
	detail, err := h.Service.Slot(c.Request.Context(), datetime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// StreamScheduleHandler handles GET /api/schedule/stream as server-sent events.
func (h *ScheduleHandler) StreamScheduleHandler(c *gin.Context) {
	views, err := h.Service.Stream(c.Request.Context(), c.Query("includePast") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	closeStream := h.Metrics.StreamOpened()
	defer closeStream()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		view, ok := <-views
		if !ok {
			return false
		}
		c.SSEvent("schedule", view)
		return true
	})
}

func parseSlotParam(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Parse(time.RFC3339, s)
}
