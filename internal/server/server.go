// Package server exposes the chat backend's HTTP surface.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/history"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/logger"
	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/relay"
)

const (
	apiName    = "Simple AI Chat API"
	apiVersion = "1.0.0"
)

// Server wires the relay and the history store to HTTP routes.
type Server struct {
	relay *relay.Relay
	store *history.Store
}

// New creates a new server.
func New(r *relay.Relay, store *history.Store) *Server {
	return &Server{relay: r, store: store}
}

// Handler builds the route table. CORS is wide open; this backend is meant to
// sit behind a development frontend.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}))

	e.POST("/chat", s.handleChat)
	e.POST("/session", s.createSession)
	e.GET("/history/:session_id", s.getHistory)
	e.GET("/sessions", s.listSessions)
	e.DELETE("/history/:session_id", s.deleteHistory)
	e.GET("/", s.root)
	e.GET("/health", s.health)

	return e
}

type chatRequest struct {
	Message   string          `json:"message"`
	History   []relay.Message `json:"history"`
	SessionID string          `json:"session_id"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	SessionID string                  `json:"session_id"`
	History   []history.StoredMessage `json:"history"`
}

type sessionsResponse struct {
	Sessions []history.Session `json:"sessions"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleChat(c *echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "message must not be empty"})
	}

	ctx := c.Request().Context()
	reply := s.relay.GetReply(ctx, req.Message, req.History)

	if req.SessionID != "" {
		if err := s.store.SaveMessage(ctx, req.SessionID, relay.RoleUser, req.Message); err != nil {
			logger.L.Error("failed to save user message", "session_id", req.SessionID, "error", err)
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Detail: fmt.Sprintf("Error processing chat request: %v", err),
			})
		}
		if err := s.store.SaveMessage(ctx, req.SessionID, relay.RoleAssistant, reply); err != nil {
			logger.L.Error("failed to save assistant message", "session_id", req.SessionID, "error", err)
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Detail: fmt.Sprintf("Error processing chat request: %v", err),
			})
		}
	}

	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) createSession(c *echo.Context) error {
	sessionID, err := s.store.CreateSession(c.Request().Context())
	if err != nil {
		logger.L.Error("failed to create session", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Detail: fmt.Sprintf("Error creating session: %v", err),
		})
	}
	return c.JSON(http.StatusOK, sessionResponse{SessionID: sessionID})
}

func (s *Server) getHistory(c *echo.Context) error {
	sessionID := c.Param("session_id")
	messages, err := s.store.GetHistory(c.Request().Context(), sessionID)
	if err != nil {
		logger.L.Error("failed to load history", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Detail: fmt.Sprintf("Error loading history: %v", err),
		})
	}
	return c.JSON(http.StatusOK, historyResponse{SessionID: sessionID, History: messages})
}

func (s *Server) listSessions(c *echo.Context) error {
	sessions, err := s.store.GetAllSessions(c.Request().Context())
	if err != nil {
		logger.L.Error("failed to list sessions", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Detail: fmt.Sprintf("Error listing sessions: %v", err),
		})
	}
	return c.JSON(http.StatusOK, sessionsResponse{Sessions: sessions})
}

func (s *Server) deleteHistory(c *echo.Context) error {
	sessionID := c.Param("session_id")
	if !s.store.DeleteSession(c.Request().Context(), sessionID) {
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Detail: "Failed to delete chat history",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":    "History deleted successfully",
		"session_id": sessionID,
	})
}

func (s *Server) root(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": apiName,
		"version": apiVersion,
	})
}

func (s *Server) health(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
