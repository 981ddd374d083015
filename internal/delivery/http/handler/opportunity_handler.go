package handler

import (
	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OpportunityHandler struct {
	opportunities usecase.OpportunityUsecase
	matching      usecase.MatchingUsecase
	applications  usecase.ApplicationUsecase
}

func NewOpportunityHandler(opportunities usecase.OpportunityUsecase, matching usecase.MatchingUsecase, applications usecase.ApplicationUsecase) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities, matching: matching, applications: applications}
}

func (h *OpportunityHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	grp := r.Group("/opportunities")
	grp.Get("", auth.Optional(), h.List)
	grp.Get("/domains", h.Domains)
	grp.Post("", auth.Middleware(), middleware.RequireRole(user.RoleCompany), h.Create)
	grp.Get("/:id", auth.Optional(), h.Get)
	grp.Patch("/:id/approval", auth.Middleware(), middleware.RequireRole(user.RoleAdmin, user.RoleFaculty), h.SetApproval)
	grp.Get("/:id/match", auth.Middleware(), middleware.RequireRole(user.RoleStudent), h.Match)
	grp.Get("/:id/applicants", auth.Middleware(), middleware.RequireRole(user.RoleCompany, user.RoleAdmin), h.Applicants)

	mine := r.Group("/companies/me/opportunities", auth.Middleware(), middleware.RequireRole(user.RoleCompany))
	mine.Get("", h.ListMine)
	mine.Patch("/:id", h.Update)
	mine.Delete("/:id", h.Close)
}

func (h *OpportunityHandler) List(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return err
	}
	perPage, err := parseQueryIntStrict(c, "per_page", 20)
	if err != nil {
		return err
	}

	res, err := h.opportunities.List(c.Context(), actor(c), usecase.OpportunityListParams{
		Domain:   c.Query("domain"),
		WorkType: c.Query("work_type"),
		Search:   c.Query("search"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.OpportunityResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, dto.FromOpportunityItem(it))
	}
	return response.Paginated(c, items, response.Pagination{
		Page:    res.Page,
		PerPage: res.PerPage,
		Total:   res.Total,
		Pages:   res.Pages,
	})
}

func (h *OpportunityHandler) Domains(c fiber.Ctx) error {
	domains, err := h.opportunities.Domains(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, domains)
}

func (h *OpportunityHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	it, err := h.opportunities.Get(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromOpportunityItem(it))
}

func (h *OpportunityHandler) Create(c fiber.Ctx) error {
	var req dto.CreateOpportunityRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	o, err := h.opportunities.Create(c.Context(), actor(c), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.FromOpportunity(o))
}

func (h *OpportunityHandler) ListMine(c fiber.Ctx) error {
	os, err := h.opportunities.ListMine(c.Context(), actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromOpportunities(os))
}

func (h *OpportunityHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateOpportunityRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	o, err := h.opportunities.Update(c.Context(), actor(c), id, req.ToPatch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Opportunity updated", dto.FromOpportunity(o))
}

func (h *OpportunityHandler) Close(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	o, err := h.opportunities.Close(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Opportunity closed", dto.FromOpportunity(o))
}

func (h *OpportunityHandler) SetApproval(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApprovalRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	o, err := h.opportunities.SetApproval(c.Context(), id, *req.Approved)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromOpportunity(o))
}

func (h *OpportunityHandler) Match(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.matching.Match(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchViewResponse{
		OpportunityID: view.OpportunityID,
		Match:         dto.FromMatch(view.Result),
	})
}

func (h *OpportunityHandler) Applicants(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	applicants, err := h.applications.ListApplicants(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplicants(applicants))
}
