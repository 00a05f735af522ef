// Package relay is the small mail relay the registration flow calls to
// tell the administrator about new accounts.
package relay

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"shipflow/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Settings are read from MAIL_USER, MAIL_PASSWORD and ADMIN_EMAIL.
type Settings struct {
	MailUser     string
	MailPassword string
	AdminEmail   string
}

// Validate names every missing variable.
func (s Settings) Validate() error {
	var missing []string
	if s.MailUser == "" {
		missing = append(missing, "MAIL_USER")
	}
	if s.MailPassword == "" {
		missing = append(missing, "MAIL_PASSWORD")
	}
	if s.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

type notifyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type notifyResponse struct {
	Success   bool   `json:"success,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Server struct {
	sender   ports.MailSender
	settings Settings
	now      func() time.Time
	logger   *slog.Logger
}

func NewServer(sender ports.MailSender, settings Settings, logger *slog.Logger) *Server {
	return &Server{
		sender:   sender,
		settings: settings,
		now:      time.Now,
		logger:   logger.With("component", "MailRelay"),
	}
}

// Router serves POST /api/notify-admin and GET /health.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.POST("/api/notify-admin", s.NotifyAdmin)
	e.GET("/health", s.Health)
	return e
}

// NotifyAdmin mails the administrator about a registration.
func (s *Server) NotifyAdmin(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, notifyResponse{Error: "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, notifyResponse{Error: "name and email are required"})
	}
	if hasControl(req.Name) || hasControl(req.Email) {
		return c.JSON(http.StatusBadRequest, notifyResponse{Error: "name and email must be a single line"})
	}

	messageID, err := s.sender.Send(c.Request().Context(), ports.MailMessage{
		From:    s.settings.MailUser,
		To:      []string{s.settings.AdminEmail},
		Subject: "New user registration: " + req.Name,
		Body: fmt.Sprintf(
			"A new user has registered and is waiting for approval.\n\nName: %s\nEmail: %s\nRegistered at: %s\n",
			req.Name, req.Email, s.now().UTC().Format(time.RFC3339)),
	})
	if err != nil {
		s.logger.ErrorContext(c.Request().Context(), "failed to send registration mail", "email", req.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, notifyResponse{Error: err.Error()})
	}

	s.logger.InfoContext(c.Request().Context(), "registration mail sent", "email", req.Email, "messageId", messageID)
	return c.JSON(http.StatusOK, notifyResponse{Success: true, MessageID: messageID})
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}
