package routes

import (
	"placement-portal/internal/delivery/http/handler"
	"placement-portal/internal/delivery/http/middleware"
	v1 "placement-portal/internal/delivery/http/routes/v1"
	"placement-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	api    v1.Handlers
	auth   *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, api v1.Handlers, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, ws: wsHandler, api: api, auth: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.api, r.auth)
}
