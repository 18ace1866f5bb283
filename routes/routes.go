package routes

import (
	"backoffice/config"
	"backoffice/controllers"
	"backoffice/middleware"
	"backoffice/repositories"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const apiVersion = "1.0.0"

// Dependencies exposes the wired repositories and services so the
// background workers can share them with the HTTP layer.
type Dependencies struct {
	Repos    *Repositories
	Services *Services
}

// SetupRoutes wires repositories, services, controllers and middleware
// into the HTTP router.
func SetupRoutes(cfg *config.Config, db *mongo.Database, redisClient *redis.Client, gateway services.PushGateway) (*gin.Engine, *Dependencies) {
	router := gin.New()

	repos := initializeRepositories(db)
	svcs := initializeServices(cfg, repos, gateway)
	ctrls := initializeControllers(svcs, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(svcs.jwtService, repos.User)
	setupGlobalMiddleware(router, cfg, redisClient)

	router.GET("/health", ctrls.Health.Health)

	api := router.Group("/api/v1")
	SetupAuthRoutes(api, ctrls.Auth, authMiddleware)

	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireAuth())

	SetupNotificationRoutes(authenticated, ctrls.Notification, authMiddleware)
	SetupCustomerRoutes(authenticated, ctrls.Customer, authMiddleware)
	SetupLocationRoutes(authenticated, ctrls.Location, authMiddleware)
	SetupSupplierRoutes(authenticated, ctrls.Supplier, authMiddleware)
	SetupCategoryRoutes(authenticated, ctrls.Category, authMiddleware)

	return router, &Dependencies{Repos: repos, Services: svcs}
}

type Repositories struct {
	User         *repositories.UserRepository
	Notification *repositories.NotificationRepository
	Customer     *repositories.CustomerRepository
	Location     *repositories.LocationRepository
	Supplier     *repositories.SupplierRepository
	Category     *repositories.CategoryRepository
}

func initializeRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:         repositories.NewUserRepository(db),
		Notification: repositories.NewNotificationRepository(db),
		Customer:     repositories.NewCustomerRepository(db),
		Location:     repositories.NewLocationRepository(db),
		Supplier:     repositories.NewSupplierRepository(db),
		Category:     repositories.NewCategoryRepository(db),
	}
}

type Services struct {
	Auth         *services.AuthService
	Notification *services.NotificationService
	Dispatch     *services.DispatchService
	Customer     *services.CustomerService
	Location     *services.LocationService
	Supplier     *services.SupplierService
	Category     *services.CategoryService

	jwtService *utils.JWTService
}

func initializeServices(cfg *config.Config, repos *Repositories, gateway services.PushGateway) *Services {
	validator := utils.NewValidationService()
	jwtService := utils.NewJWTService(cfg.JWTSecret)

	pushService := services.NewPushService(gateway, cfg.PushTimeout)
	dispatchService := services.NewDispatchService(repos.Notification, repos.User, pushService, cfg.DispatchWorkerCount)

	return &Services{
		Auth:         services.NewAuthService(repos.User, jwtService, validator),
		Notification: services.NewNotificationService(repos.Notification, dispatchService, validator),
		Dispatch:     dispatchService,
		Customer:     services.NewCustomerService(repos.Customer, validator),
		Location:     services.NewLocationService(repos.Location, validator),
		Supplier:     services.NewSupplierService(repos.Supplier, repos.Category, validator),
		Category:     services.NewCategoryService(repos.Category, validator),
		jwtService:   jwtService,
	}
}

type Controllers struct {
	Auth         *controllers.AuthController
	Notification *controllers.NotificationController
	Customer     *controllers.CustomerController
	Location     *controllers.LocationController
	Supplier     *controllers.SupplierController
	Category     *controllers.CategoryController
	Health       *controllers.HealthController
}

func initializeControllers(svcs *Services, redisClient *redis.Client) *Controllers {
	return &Controllers{
		Auth:         controllers.NewAuthController(svcs.Auth),
		Notification: controllers.NewNotificationController(svcs.Notification),
		Customer:     controllers.NewCustomerController(svcs.Customer),
		Location:     controllers.NewLocationController(svcs.Location),
		Supplier:     controllers.NewSupplierController(svcs.Supplier),
		Category:     controllers.NewCategoryController(svcs.Category),
		Health:       controllers.NewHealthController(redisClient, apiVersion),
	}
}

func setupGlobalMiddleware(router *gin.Engine, cfg *config.Config, redisClient *redis.Client) {
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger(middleware.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	if redisClient != nil {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			Redis:     redisClient,
			Requests:  cfg.RateLimitRequests,
			Window:    cfg.RateLimitWindow,
			SkipPaths: []string{"/health"},
		})
		router.Use(limiter.Middleware())
	}
}
