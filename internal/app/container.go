package app

import (
	"context"
	"errors"
	"log"
	"time"

	"placement-portal/internal/config"
	"placement-portal/internal/database"
	dbpostgres "placement-portal/internal/database/postgres"
	"placement-portal/internal/delivery/http/handler"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/delivery/http/routes"
	v1 "placement-portal/internal/delivery/http/routes/v1"
	"placement-portal/internal/infrastructure/cache"
	"placement-portal/internal/pkg/jwt"
	"placement-portal/internal/repository"
	"placement-portal/internal/usecase"
	ucauth "placement-portal/internal/usecase/auth"
	"placement-portal/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Routes *routes.Registry
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Routes: NewRegistry(cfg, db, redisCache, hub, logger),
	}, nil
}

// NewRegistry wires repositories, usecases and handlers over already opened
// connections.
func NewRegistry(cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub, logger *log.Logger) *routes.Registry {
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresStudentProfileRepository(db)
	oppRepo := repository.NewPostgresOpportunityRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	companyRepo := repository.NewPostgresCompanyRepository(db)
	notifRepo := repository.NewPostgresNotificationRepository(db)
	externalJobRepo := repository.NewPostgresExternalJobRepository(db)

	authUC := usecase.NewAuthUsecase(ucauth.NewService(userRepo, companyRepo), userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	oppUC := usecase.NewOpportunityUsecase(oppRepo, profileRepo, appRepo, companyRepo, redisCache, logger)
	matchUC := usecase.NewMatchingUsecase(oppRepo, profileRepo, appRepo)
	notifUC := usecase.NewNotificationUsecase(notifRepo, ws.NewNotifier(hub), logger)
	appUC := usecase.NewApplicationUsecase(appRepo, oppRepo, profileRepo, companyRepo, redisCache, notifUC, logger)
	analyticsUC := usecase.NewAnalyticsUsecase(profileRepo, appRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo, logger)
	adminUC := usecase.NewAdminUsecase(userRepo, logger)
	externalJobUC := usecase.NewExternalJobUsecase(externalJobRepo, profileRepo)

	api := v1.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Student:      handler.NewStudentHandler(profileUC, matchUC, appUC, externalJobUC),
		Opportunity:  handler.NewOpportunityHandler(oppUC, matchUC, appUC),
		Application:  handler.NewApplicationHandler(appUC),
		Analytics:    handler.NewAnalyticsHandler(analyticsUC),
		Company:      handler.NewCompanyHandler(companyUC),
		Admin:        handler.NewAdminHandler(adminUC),
		Notification: handler.NewNotificationHandler(notifUC),
	}

	return routes.NewRegistry(
		handler.NewHealthHandler(db, redisCache),
		ws.NewHandler(hub, jwtSvc, logger),
		api,
		authMw,
	)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
