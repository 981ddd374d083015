package handler

import (
	"strconv"
	"strings"

	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	grp := r.Group("/notifications", auth.Middleware())
	grp.Get("", h.List)
	grp.Get("/unread-count", h.UnreadCount)
	grp.Put("/read-all", h.MarkAllRead)
	grp.Put("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	unreadOnly := false
	if s := strings.TrimSpace(c.Query("unread_only")); s != "" {
		unreadOnly, err = strconv.ParseBool(s)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid unread_only", nil, err)
		}
	}

	ns, err := h.uc.List(c.Context(), actor(c), usecase.NotificationListParams{UnreadOnly: unreadOnly, Limit: limit})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromNotifications(ns))
}

func (h *NotificationHandler) UnreadCount(c fiber.Ctx) error {
	n, err := h.uc.UnreadCount(c.Context(), actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UnreadCountResponse{UnreadCount: n})
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.MarkRead(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Notification marked as read", dto.FromNotification(n))
}

func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context(), actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "All notifications marked as read", dto.MarkAllReadResponse{Updated: n})
}
