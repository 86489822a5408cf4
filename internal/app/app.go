package app

import (
	"healthdash/config"
	"healthdash/internal/database"
	"healthdash/internal/events"
	"healthdash/internal/handlers/middleware"
	"healthdash/internal/logger"
	"healthdash/internal/repositories"
	"healthdash/internal/services"
	"healthdash/internal/storage"
	"healthdash/internal/websockets"

	eventController "healthdash/internal/controllers/events"
	insightController "healthdash/internal/controllers/insights"
	integrationController "healthdash/internal/controllers/integrations"
	labResultController "healthdash/internal/controllers/labresults"
	metricController "healthdash/internal/controllers/metrics"
	userController "healthdash/internal/controllers/users"
	workoutController "healthdash/internal/controllers/workouts"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	FileStorage storage.FileStorage

	// Services
	TransactionService       *services.TransactionService
	CacheInvalidationService *services.CacheInvalidationService

	// Repositories
	UserRepo       repositories.UserRepository
	SessionRepo    repositories.SessionRepository
	LabResultRepo  repositories.LabResultRepository
	MarkerRepo     repositories.BloodworkMarkerRepository
	MetricRepo     repositories.HealthMetricRepository
	InsightRepo    repositories.AiInsightRepository
	EventRepo      repositories.HealthEventRepository
	ServiceRepo    repositories.ConnectedServiceRepository
	WorkoutRepo    repositories.WorkoutRepository
	WorkoutSetRepo repositories.WorkoutSetRepository

	// Controllers
	UserController        *userController.UserController
	LabResultController   *labResultController.LabResultController
	MetricController      *metricController.MetricController
	InsightController     *insightController.InsightController
	EventController       *eventController.EventController
	IntegrationController *integrationController.IntegrationController
	WorkoutController     *workoutController.WorkoutController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	if err := db.Migrate(); err != nil {
		return &App{}, log.Err("failed to migrate database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	fileStorage, err := storage.NewS3Storage(config)
	if err != nil {
		return &App{}, log.Err("failed to create file storage", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheInvalidationService := services.NewCacheInvalidationService(db, eventBus)

	// Initialize repositories
	userRepo := repositories.NewUser(db)
	sessionRepo := repositories.NewSession(db)
	labResultRepo := repositories.NewLabResult(db)
	markerRepo := repositories.NewBloodworkMarker(db)
	metricRepo := repositories.NewHealthMetric(db)
	insightRepo := repositories.NewAiInsight(db)
	eventRepo := repositories.NewHealthEvent(db)
	serviceRepo := repositories.NewConnectedService(db)
	workoutRepo := repositories.NewWorkout(db)
	workoutSetRepo := repositories.NewWorkoutSet(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, config, sessionRepo, userRepo)
	userCtrl := userController.New(userRepo, sessionRepo, cacheInvalidationService, config)
	labResultCtrl := labResultController.New(labResultRepo, markerRepo, userRepo, transactionService, fileStorage)
	metricCtrl := metricController.New(metricRepo, userRepo)
	insightCtrl := insightController.New(insightRepo, userRepo, eventBus)
	eventCtrl := eventController.New(eventRepo, userRepo)
	integrationCtrl := integrationController.New(serviceRepo, userRepo)
	workoutCtrl := workoutController.New(workoutRepo, workoutSetRepo, userRepo, transactionService)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:                 db,
		Config:                   config,
		Middleware:               middleware,
		Websocket:                websocket,
		EventBus:                 eventBus,
		FileStorage:              fileStorage,
		TransactionService:       transactionService,
		CacheInvalidationService: cacheInvalidationService,
		UserRepo:                 userRepo,
		SessionRepo:              sessionRepo,
		LabResultRepo:            labResultRepo,
		MarkerRepo:               markerRepo,
		MetricRepo:               metricRepo,
		InsightRepo:              insightRepo,
		EventRepo:                eventRepo,
		ServiceRepo:              serviceRepo,
		WorkoutRepo:              workoutRepo,
		WorkoutSetRepo:           workoutSetRepo,
		UserController:           userCtrl,
		LabResultController:      labResultCtrl,
		MetricController:         metricCtrl,
		InsightController:        insightCtrl,
		EventController:          eventCtrl,
		IntegrationController:    integrationCtrl,
		WorkoutController:        workoutCtrl,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.FileStorage,
		a.TransactionService,
		a.CacheInvalidationService,
		a.UserRepo,
		a.SessionRepo,
		a.LabResultRepo,
		a.MarkerRepo,
		a.MetricRepo,
		a.InsightRepo,
		a.EventRepo,
		a.ServiceRepo,
		a.WorkoutRepo,
		a.WorkoutSetRepo,
		a.UserController,
		a.LabResultController,
		a.MetricController,
		a.InsightController,
		a.EventController,
		a.IntegrationController,
		a.WorkoutController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
