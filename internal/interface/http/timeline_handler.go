package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
	"github.com/oksasatya/yatter-client/pkg/response"
	"github.com/oksasatya/yatter-client/pkg/validation"
)

const maxTimelineLimit = 80

type TimelineHandler struct {
	Store *sqlite.Store
}

func NewTimelineHandler(store *sqlite.Store) *TimelineHandler {
	return &TimelineHandler{Store: store}
}

type timelineQuery struct {
	OnlyMedia bool  `form:"only_media"`
	MaxID     int64 `form:"max_id" binding:"gte=0"`
	SinceID   int64 `form:"since_id" binding:"gte=0"`
	Limit     int   `form:"limit" binding:"gte=0"`
}

func bindTimeline(c *gin.Context) (sqlite.TimelineFilter, bool) {
	var q timelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return sqlite.TimelineFilter{}, false
	}
	if q.Limit == 0 || q.Limit > maxTimelineLimit {
		q.Limit = maxTimelineLimit
	}
	return sqlite.TimelineFilter{OnlyMedia: q.OnlyMedia, MaxID: q.MaxID, SinceID: q.SinceID, Limit: q.Limit}, true
}

func (h *TimelineHandler) Public(c *gin.Context) {
	f, ok := bindTimeline(c)
	if !ok {
		return
	}
	ss, err := h.Store.PublicTimeline(c.Request.Context(), f)
	h.render(c, ss, err)
}

func (h *TimelineHandler) Home(c *gin.Context) {
	f, ok := bindTimeline(c)
	if !ok {
		return
	}
	ss, err := h.Store.HomeTimeline(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), f)
	h.render(c, ss, err)
}

func (h *TimelineHandler) render(c *gin.Context, ss []sqlite.Status, err error) {
	if err != nil {
		storeError(c, err)
		return
	}
	out, err := presentStatuses(c, h.Store, ss)
	if err != nil {
		storeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}
