package v1

import (
	"placement-portal/internal/delivery/http/handler"
	"placement-portal/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Opportunity  *handler.OpportunityHandler
	Application  *handler.ApplicationHandler
	Analytics    *handler.AnalyticsHandler
	Company      *handler.CompanyHandler
	Admin        *handler.AdminHandler
	Notification *handler.NotificationHandler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Student != nil {
		h.Student.RegisterRoutes(r, authMw)
	}
	if h.Opportunity != nil {
		h.Opportunity.RegisterRoutes(r, authMw)
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(r, authMw)
	}
	if h.Analytics != nil {
		h.Analytics.RegisterRoutes(r, authMw)
	}
	if h.Company != nil {
		h.Company.RegisterRoutes(r, authMw)
	}
	if h.Admin != nil {
		h.Admin.RegisterRoutes(r, authMw)
	}
	if h.Notification != nil {
		h.Notification.RegisterRoutes(r, authMw)
	}
}
