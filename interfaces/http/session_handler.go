package http

import (
	"net/http"
	"time"

	"taskdash/infrastructure/configuration"
	"taskdash/infrastructure/logger"
	"taskdash/infrastructure/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionTTL = 24 * time.Hour

// ISessionHandler issues the dashboard session token.
type ISessionHandler interface {
	Login(ctx *gin.Context)
}

type SessionHandler struct{}

func NewSessionHandler() ISessionHandler {
	return &SessionHandler{}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login
func (h *SessionHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := configuration.C.App
	if app.Password == "" || req.Password != app.Password {
		logger.GetLogger().Warn("Dashboard login rejected")
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	now := utils.GetCurrentTime()
	token, err := utils.GenerateToken(map[string]interface{}{
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}, app.SecretKey)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": now.Add(sessionTTL),
	})
}
