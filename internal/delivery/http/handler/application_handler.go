package handler

import (
	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	grp := r.Group("/applications", auth.Middleware())
	grp.Post("", middleware.RequireRole(user.RoleStudent), h.Submit)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", middleware.RequireRole(user.RoleStudent), h.Withdraw)
	grp.Patch("/:id/status", middleware.RequireRole(user.RoleCompany, user.RoleAdmin), h.UpdateStatus)
}

func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	oppID, err := uuid.Parse(req.OpportunityID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid opportunity_id", nil, err)
	}

	res, err := h.uc.Submit(c.Context(), actor(c), usecase.SubmitInput{OpportunityID: oppID, CoverLetter: req.CoverLetter})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.FromSubmitResult(res))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Get(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(a))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Withdraw(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application withdrawn", dto.FromApplication(a))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	a, err := h.uc.UpdateStatus(c.Context(), actor(c), id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(a))
}
