package handler

import (
	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/analytics/placements", auth.Middleware(), middleware.RequireRole(user.RoleFaculty, user.RoleAdmin), h.Placements)
}

func (h *AnalyticsHandler) Placements(c fiber.Ctx) error {
	report, err := h.uc.Placements(c.Context(), actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPlacementReport(report))
}
