package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/export"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/logging"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/assistant"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/session"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/worker"
)

// Handler wires HTTP routes to the conversation service and the per-session
// worker manager.
type Handler struct {
	assistant *assistant.Service
	workers   *worker.Manager
	logger    *logrus.Logger
}

// NewHandler constructs a Handler instance.
func NewHandler(service *assistant.Service, cfg worker.DispatcherConfig, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		assistant: service,
		workers:   worker.NewManager(service, cfg),
		logger:    logger,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	userRoutes := api.Group("/users/:id")
	userRoutes.POST("/conversation/start", h.startConversation)
	userRoutes.POST("/conversation/msg", h.captureInput)
	userRoutes.GET("/conversation/sessions/:session_id/messages", h.getSessionMessages)
	userRoutes.GET("/conversation/sessions/:session_id/summary", h.getSessionSummary)
	userRoutes.GET("/conversation/sessions/:session_id/suggestions", h.getSuggestions)
	userRoutes.GET("/conversation/sessions/:session_id/export", h.exportSession)
	userRoutes.PATCH("/conversation/sessions/:session_id/messages/:message_id", h.updateMessageFlags)
	userRoutes.DELETE("/conversation/sessions/:session_id", h.deleteSession)
	api.POST("/admin/cleanup", h.runCleanup)
}

func (h *Handler) pathUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return userID, true
}

// sessionForUser resolves the path session and checks it belongs to the path
// user. Foreign sessions are indistinguishable from missing ones.
func (h *Handler) sessionForUser(c *gin.Context, userID int64) (*session.Log, bool) {
	sessionID := c.Param("session_id")
	log, err := h.assistant.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, assistant.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	if log.UserID() != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return log, true
}

func (h *Handler) startConversation(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	sessionID, err := h.assistant.CreateSession(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sessionID,
		"user_id":    userID,
	})
}

// User input interface
type inputRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

func (h *Handler) captureInput(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	prof := h.assistant.Profile(c.Request.Context(), userID)
	reply, err := h.workers.Submit(c.Request.Context(), req.SessionID, req.Content, prof)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, assistant.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, worker.ErrDispatcherBusy):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "server is busy, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	suggestions := []string{}
	if log, err := h.assistant.GetSession(c.Request.Context(), req.SessionID); err == nil {
		suggestions = log.SuggestedReplies()
	}
	c.JSON(http.StatusOK, gin.H{
		"reply":       reply,
		"suggestions": suggestions,
	})
}

func (h *Handler) getSessionMessages(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	log, ok := h.sessionForUser(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": log.ID(),
		"messages":   log.History(),
	})
}

func (h *Handler) getSessionSummary(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	log, ok := h.sessionForUser(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, log.Summarize())
}

func (h *Handler) getSuggestions(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	log, ok := h.sessionForUser(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": log.SuggestedReplies()})
}

func (h *Handler) exportSession(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	log, ok := h.sessionForUser(c, userID)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "text")
	sink := export.ForFormat(format)
	if format == "json" {
		c.Header("Content-Type", "application/json")
	} else {
		c.Header("Content-Type", "text/plain; charset=utf-8")
	}
	c.Header("Content-Disposition", `attachment; filename="conversation-`+log.ID()+`.`+formatExtension(format)+`"`)
	c.Status(http.StatusOK)
	if err := sink.Export(c.Writer, log.History()); err != nil {
		logging.WithSession(h.logger, log.ID(), userID).WithError(err).Warn("export failed")
	}
}

func formatExtension(format string) string {
	if format == "json" {
		return "json"
	}
	return "txt"
}

type flagsRequest struct {
	Read      bool `json:"read"`
	Favorited bool `json:"favorited"`
}

func (h *Handler) updateMessageFlags(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	if _, ok := h.sessionForUser(c, userID); !ok {
		return
	}
	var req flagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := h.assistant.SetMessageFlags(c.Request.Context(), c.Param("session_id"), c.Param("message_id"), req.Read, req.Favorited)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteSession(c *gin.Context) {
	userID, ok := h.pathUserID(c)
	if !ok {
		return
	}
	if _, ok := h.sessionForUser(c, userID); !ok {
		return
	}
	sessionID := c.Param("session_id")
	h.workers.CancelSession(sessionID)
	if err := h.assistant.DeleteSession(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, assistant.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type cleanupRequest struct {
	RetentionDays int `json:"retention_days"`
}

func (h *Handler) runCleanup(c *gin.Context) {
	var req cleanupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	removed := h.assistant.Cleanup(c.Request.Context(), req.RetentionDays)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
