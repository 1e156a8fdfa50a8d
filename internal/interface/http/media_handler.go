package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
	"github.com/oksasatya/yatter-client/pkg/response"
)

const maxUploadBytes = 8 << 20

type MediaHandler struct {
	Store  *sqlite.Store
	Logger *logrus.Logger
}

func NewMediaHandler(store *sqlite.Store, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{Store: store, Logger: logger}
}

// Upload accepts multipart field "file" and an optional "description".
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}

	contentType := http.DetectContentType(data)
	m, err := h.Store.AddMedia(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), sqlite.Media{
		Type:        mediaType(contentType),
		Filename:    fh.Filename,
		ContentType: contentType,
		Description: c.PostForm("description"),
		Data:        data,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"media_id": m.ID, "bytes": len(data), "type": contentType}).Debug("media stored")
	}
	response.JSON(c, http.StatusOK, presentMedia(c, m))
}

func (h *MediaHandler) Serve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.Store.Media(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.Data(http.StatusOK, m.ContentType, m.Data)
}

func mediaType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/gif"):
		return "gifv"
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "unknown"
	}
}
