package handler

import (
	"strconv"
	"strings"

	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	grp := r.Group("/admin", auth.Middleware(), middleware.RequireRole(user.RoleAdmin))
	grp.Get("/users", h.ListUsers)
	grp.Patch("/users/:id", h.SetUserActive)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return err
	}
	perPage, err := parseQueryIntStrict(c, "per_page", 20)
	if err != nil {
		return err
	}
	var active *bool
	if s := strings.TrimSpace(c.Query("is_active")); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid is_active", nil, err)
		}
		active = &v
	}

	res, err := h.uc.ListUsers(c.Context(), actor(c), usecase.UserListParams{
		Role:    c.Query("role"),
		Active:  active,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Paginated(c, dto.FromUsers(res.Items), response.Pagination{
		Page:    res.Page,
		PerPage: res.PerPage,
		Total:   res.Total,
		Pages:   res.Pages,
	})
}

func (h *AdminHandler) SetUserActive(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetUserActiveRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	u, err := h.uc.SetUserActive(c.Context(), actor(c), id, *req.IsActive)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "User updated", dto.FromUser(u))
}
