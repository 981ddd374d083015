package handler

import (
	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	profiles     usecase.ProfileUsecase
	matching     usecase.MatchingUsecase
	applications usecase.ApplicationUsecase
	externalJobs usecase.ExternalJobUsecase
}

func NewStudentHandler(profiles usecase.ProfileUsecase, matching usecase.MatchingUsecase, applications usecase.ApplicationUsecase, externalJobs usecase.ExternalJobUsecase) *StudentHandler {
	return &StudentHandler{profiles: profiles, matching: matching, applications: applications, externalJobs: externalJobs}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	me := r.Group("/students/me", auth.Middleware(), middleware.RequireRole(user.RoleStudent))
	me.Get("/profile", h.GetProfile)
	me.Put("/profile", h.UpdateProfile)
	me.Get("/completeness", h.GetCompleteness)
	me.Get("/recommendations", h.Recommendations)
	me.Get("/applications", h.MyApplications)
	me.Get("/external-jobs", h.ExternalJobs)
	me.Get("/external-jobs/:id/match", h.ExternalJobMatch)
}

func (h *StudentHandler) GetProfile(c fiber.Ctx) error {
	p, comp, err := h.profiles.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProfileWithCompletenessResponse{
		Profile:      dto.FromProfile(p),
		Completeness: dto.FromCompleteness(comp),
	})
}

func (h *StudentHandler) UpdateProfile(c fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, comp, err := h.profiles.UpdateProfile(c.Context(), middleware.UserID(c), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProfileWithCompletenessResponse{
		Profile:      dto.FromProfile(p),
		Completeness: dto.FromCompleteness(comp),
	})
}

func (h *StudentHandler) GetCompleteness(c fiber.Ctx) error {
	comp, err := h.profiles.GetCompleteness(c.Context(), middleware.UserID(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompleteness(comp))
}

func (h *StudentHandler) Recommendations(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	minMatch, err := parseQueryIntStrict(c, "min_match", 0)
	if err != nil {
		return err
	}

	recs, err := h.matching.Recommend(c.Context(), actor(c), usecase.RecommendationParams{Limit: limit, MinMatch: minMatch})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecommendations(recs))
}

func (h *StudentHandler) MyApplications(c fiber.Ctx) error {
	rows, err := h.applications.ListMine(c.Context(), actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplicationRows(rows))
}

func (h *StudentHandler) ExternalJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	minMatch, err := parseQueryIntStrict(c, "min_match", 0)
	if err != nil {
		return err
	}

	jobs, err := h.externalJobs.ListForStudent(c.Context(), actor(c), usecase.ExternalJobParams{Limit: limit, MinMatch: minMatch})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromExternalJobMatches(jobs))
}

func (h *StudentHandler) ExternalJobMatch(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	m, err := h.externalJobs.Match(c.Context(), actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromExternalJobMatch(m))
}
