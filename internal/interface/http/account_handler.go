package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
	"github.com/oksasatya/yatter-client/pkg/response"
	"github.com/oksasatya/yatter-client/pkg/validation"
)

type AccountHandler struct {
	Store  *sqlite.Store
	Logger *logrus.Logger
}

func NewAccountHandler(store *sqlite.Store, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Store: store, Logger: logger}
}

type createAccountRequest struct {
	Username string `json:"username" binding:"username"`
	Password string `json:"password" binding:"required"`
}

type updateCredentialsRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=64"`
	Note        *string `json:"note" binding:"omitempty,max=500"`
	Avatar      *string `json:"avatar"`
	Header      *string `json:"header"`
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Store.CreateAccount(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("username", req.Username).Info("create account rejected")
		}
		storeError(c, err)
		return
	}
	h.renderAccount(c, a)
}

func (h *AccountHandler) Get(c *gin.Context) {
	a, err := h.Store.Account(c.Request.Context(), c.Param("username"))
	if err != nil {
		storeError(c, err)
		return
	}
	h.renderAccount(c, a)
}

func (h *AccountHandler) UpdateCredentials(c *gin.Context) {
	var req updateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Store.UpdateAccount(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), sqlite.AccountUpdate{
		DisplayName: req.DisplayName,
		Note:        req.Note,
		Avatar:      req.Avatar,
		Header:      req.Header,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	h.renderAccount(c, a)
}

func (h *AccountHandler) renderAccount(c *gin.Context, a sqlite.Account) {
	out, err := presentAccount(c.Request.Context(), h.Store, a)
	if err != nil {
		storeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *AccountHandler) Follow(c *gin.Context) {
	me, target := c.GetString(middleware.CtxUsernameKey), c.Param("username")
	if err := h.Store.Follow(c.Request.Context(), me, target); err != nil {
		storeError(c, err)
		return
	}
	h.relationship(c, me, target)
}

func (h *AccountHandler) Unfollow(c *gin.Context) {
	me, target := c.GetString(middleware.CtxUsernameKey), c.Param("username")
	if err := h.Store.Unfollow(c.Request.Context(), me, target); err != nil {
		storeError(c, err)
		return
	}
	h.relationship(c, me, target)
}

func (h *AccountHandler) relationship(c *gin.Context, me, target string) {
	ctx := c.Request.Context()
	a, err := h.Store.Account(ctx, target)
	if err != nil {
		storeError(c, err)
		return
	}
	following, followedBy, err := h.Store.Relationship(ctx, me, target)
	if err != nil {
		storeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, relationshipJSON{ID: sqlite.FormatID(a.ID), Username: target, Following: following, FollowedBy: followedBy})
}

func (h *AccountHandler) Following(c *gin.Context) {
	as, err := h.Store.Following(c.Request.Context(), c.Param("username"))
	h.renderAccounts(c, as, err)
}

func (h *AccountHandler) Followers(c *gin.Context) {
	as, err := h.Store.Followers(c.Request.Context(), c.Param("username"))
	h.renderAccounts(c, as, err)
}

func (h *AccountHandler) renderAccounts(c *gin.Context, as []sqlite.Account, err error) {
	if err != nil {
		storeError(c, err)
		return
	}
	out, err := presentAccounts(c.Request.Context(), h.Store, as)
	if err != nil {
		storeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// Relationships answers GET /accounts/relationships?username=a,b; unknown
// names are skipped.
func (h *AccountHandler) Relationships(c *gin.Context) {
	ctx := c.Request.Context()
	me := c.GetString(middleware.CtxUsernameKey)
	out := []relationshipJSON{}
	for _, name := range strings.Split(c.Query("username"), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		a, err := h.Store.Account(ctx, name)
		if err != nil {
			continue
		}
		following, followedBy, err := h.Store.Relationship(ctx, me, name)
		if err != nil {
			storeError(c, err)
			return
		}
		out = append(out, relationshipJSON{ID: sqlite.FormatID(a.ID), Username: name, Following: following, FollowedBy: followedBy})
	}
	response.JSON(c, http.StatusOK, out)
}
