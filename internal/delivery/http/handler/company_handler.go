package handler

import (
	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	grp := r.Group("/companies/me/profile", auth.Middleware(), middleware.RequireRole(user.RoleCompany))
	grp.Get("", h.GetProfile)
	grp.Put("", h.UpdateProfile)
}

func (h *CompanyHandler) GetProfile(c fiber.Ctx) error {
	p, err := h.uc.GetProfile(c.Context(), actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompany(p))
}

func (h *CompanyHandler) UpdateProfile(c fiber.Ctx) error {
	var req dto.CompanyProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.uc.UpdateProfile(c.Context(), actor(c), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Company profile updated", dto.FromCompany(p))
}
