package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-saturation/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
	"github.com/comitanigiacomo/kanso-saturation/internal/core/services"
)

type SessionHandler struct {
	svc    *services.SessionService
	tokens *services.TokenService
}

func NewSessionHandler(svc *services.SessionService, tokens *services.TokenService) *SessionHandler {
	return &SessionHandler{
		svc:    svc,
		tokens: tokens,
	}
}

type startSessionRequest struct {
	Weeks int `json:"weeks"`
}

type startSessionResponse struct {
	Session     *domain.Session `json:"session"`
	Saturations []float64       `json:"saturations"`
	Token       string          `json:"token"`
}

// sessionResponse carries a re-issued token, valid for another SESSION_TTL.
type sessionResponse struct {
	Session     *domain.Session `json:"session"`
	Saturations []float64       `json:"saturations"`
	Token       string          `json:"token"`
}

type toggleRequest struct {
	Index   *int   `json:"index"`
	Date    string `json:"date"`
	Version int    `json:"version"`
}

type expandRequest struct {
	Expanded *bool `json:"expanded" binding:"required"`
}

// RegisterPublicRoutes mounts the endpoints that do not need a session token.
func (h *SessionHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.Start)
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	session := router.Group("/session")
	{
		session.GET("", h.Get)
		session.DELETE("", h.Delete)
		session.GET("/grid", h.Grid)
		session.PUT("/expanded", h.SetExpanded)
		session.POST("/toggle", h.Toggle)
		session.GET("/stats", h.Stats)
	}
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	session, err := h.svc.Start(c.Request.Context(), services.StartSessionInput{Weeks: req.Weeks})
	if err != nil {
		handleError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(session)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, startSessionResponse{
		Session:     session,
		Saturations: session.Saturations(),
		Token:       token,
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(session)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		Session:     session,
		Saturations: session.Saturations(),
		Token:       token,
	})
}

func (h *SessionHandler) Toggle(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if req.Index == nil && req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index or date is required"})
		return
	}

	result, err := h.svc.Toggle(c.Request.Context(), services.ToggleInput{
		SessionID: sessionID,
		Index:     req.Index,
		Date:      req.Date,
		Version:   req.Version,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) Grid(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var expanded *bool
	if raw := c.Query("expanded"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expanded must be a boolean"})
			return
		}
		expanded = &v
	}

	view, err := h.svc.Grid(c.Request.Context(), sessionID, expanded)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) SetExpanded(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req expandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.svc.SetExpanded(c.Request.Context(), sessionID, *req.Expanded)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Stats(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), sessionID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidWeeks),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrEntryIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})

	case errors.Is(err, domain.ErrSessionConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "session has been modified elsewhere, reload it",
		})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
