package handler

import (
	"errors"

	"placement-portal/internal/delivery/http/dto"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/pkg/response"
	"placement-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var incomplete *usecase.IncompleteProfileError
	if errors.As(err, &incomplete) {
		return middleware.NewAppError(fiber.StatusForbidden, incomplete.Completeness.Tip, dto.FromCompleteness(incomplete.Completeness), err)
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)

	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Student profile not found", nil, err)
	case errors.Is(err, usecase.ErrCompanyProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company profile not found", nil, err)
	case errors.Is(err, usecase.ErrOpportunityNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Opportunity not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
	case errors.Is(err, usecase.ErrExternalJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "External job not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)

	case errors.Is(err, usecase.ErrOpportunityClosed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Opportunity is not accepting applications", nil, err)
	case errors.Is(err, usecase.ErrDeadlinePassed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application deadline has passed", nil, err)
	case errors.Is(err, usecase.ErrCannotWithdraw):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application can no longer be withdrawn", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrSelfDeactivation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Admins cannot deactivate their own account", nil, err)

	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this opportunity", nil, err)
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Application submission already in progress", nil, err)
	case errors.Is(err, usecase.ErrApplicationWithdrawn):
		return middleware.NewAppError(fiber.StatusConflict, "Application was withdrawn", nil, err)

	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
