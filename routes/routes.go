package routes

import (
	"storerating/configs"
	"storerating/controllers"
	"storerating/entity"
	"storerating/middlewares"
	"storerating/pkg/metrics"
	"storerating/repository"
	"storerating/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter สร้าง gin engine พร้อม middleware และ route ทั้งหมด
func NewRouter(db *gorm.DB, cfg *configs.Config, log logrus.FieldLogger) *gin.Engine {
	controllers.SetupBinding()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.Metrics())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.Timeout(cfg.RequestTimeout))

	RegisterRoutes(r, db, cfg, log)
	return r
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, log logrus.FieldLogger) {
	r.GET("/", controllers.Health)
	r.GET("/health", controllers.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	ratingSvc := services.NewRatingService(ratingRepo, storeRepo)
	dirSvc := services.NewDirectoryService(userRepo, storeRepo, ratingRepo)
	adminSvc := services.NewAdminService(db, userRepo, storeRepo, ratingRepo, log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, log)
	adminCtrl := controllers.NewAdminController(adminSvc, dirSvc, log)
	storeCtrl := controllers.NewStoreController(ratingSvc, dirSvc, log)
	ownerCtrl := controllers.NewStoreOwnerController(ratingSvc, log)

	authCfg := middlewares.AuthConfig{Secret: cfg.JWTSecret, Log: log}
	if cfg.AuthRefreshRole {
		authCfg.RefreshRole = userRepo
	}
	authenticated := middlewares.AuthMiddleware(authCfg)

	api := r.Group("/api")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected, ทุก role)
	aAuth := a.Group("", authenticated)
	{
		aAuth.PUT("/update-password", authCtrl.UpdatePassword)
		aAuth.GET("/me", authCtrl.Me)
	}

	// Admin (admin only)
	admin := api.Group("/admin", authenticated, middlewares.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.POST("/users", adminCtrl.CreateUser)
		admin.POST("/stores", adminCtrl.CreateStore)
		admin.GET("/users", adminCtrl.Users)
		admin.GET("/stores", adminCtrl.Stores)
		admin.GET("/users/:id", adminCtrl.UserDetail)
	}

	// Stores (user only)
	stores := api.Group("/stores", authenticated, middlewares.RequireRole(entity.RoleUser))
	{
		stores.GET("", storeCtrl.List)
		stores.POST("/rating", storeCtrl.SubmitRating)
	}

	// Store owner
	owner := api.Group("/store-owner", authenticated, middlewares.RequireRole(entity.RoleStoreOwner))
	{
		owner.GET("/dashboard", ownerCtrl.Dashboard)
	}
}
