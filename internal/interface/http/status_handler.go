package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
	"github.com/oksasatya/yatter-client/pkg/response"
	"github.com/oksasatya/yatter-client/pkg/validation"
)

type StatusHandler struct {
	Store  *sqlite.Store
	Logger *logrus.Logger
}

func NewStatusHandler(store *sqlite.Store, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{Store: store, Logger: logger}
}

type postStatusRequest struct {
	Status   *string `json:"status" binding:"omitempty,max=1000"`
	MediaIDs []int64 `json:"media_ids"`
}

func (h *StatusHandler) Create(c *gin.Context) {
	var req postStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if (req.Status == nil || *req.Status == "") && len(req.MediaIDs) == 0 {
		response.Error(c, http.StatusBadRequest, "status or media_ids is required", nil)
		return
	}
	author := c.GetString(middleware.CtxUsernameKey)
	st, err := h.Store.CreateStatus(c.Request.Context(), author, req.Status, req.MediaIDs)
	if err != nil {
		storeError(c, err)
		return
	}
	out, err := presentStatus(c, h.Store, st)
	if err != nil {
		storeError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithField("status_id", st.ID).WithField("author", author).Debug("status created")
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *StatusHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	st, err := h.Store.Status(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	out, err := presentStatus(c, h.Store, st)
	if err != nil {
		storeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteStatus(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), id); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
