package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/handler"
	"github.com/stemsi/coursehub-backend/internal/middleware"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Class    *handler.ClassHandler
	Cart     *handler.CartHandler
	Payment  *handler.PaymentHandler
	Feedback *handler.FeedbackHandler
	System   *handler.SystemHandler
}

// Guards carries the shared access-control dependencies.
type Guards struct {
	Auth    *service.AuthService
	Roles   middleware.RoleChecker
	Limiter middleware.Limiter
}

// SetupRouter configures all Gin routes with appropriate middlewares.
func SetupRouter(
	guards Guards,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: cfg.BrotliMinLength,
	}))

	jwt := middleware.RequireJWT(guards.Auth)
	admin := middleware.RequireRole(guards.Roles, model.RoleAdmin, log)
	limit := func(scope string) gin.HandlerFunc {
		return middleware.RateLimit(guards.Limiter, scope, log)
	}

	// ─── Liveness ──────────────────────────────────────────────────────
	router.GET("/", handlers.System.Root)
	router.GET("/health", handlers.System.Health)

	// ─── Auth ──────────────────────────────────────────────────────────
	router.POST("/jwt", limit("jwt"), handlers.Auth.IssueToken)

	// ─── Users ─────────────────────────────────────────────────────────
	router.POST("/users", handlers.User.Create)
	router.GET("/users", jwt, admin, handlers.User.List)
	router.DELETE("/users/:id", handlers.User.Delete)
	router.GET("/users/admin/:email", jwt, middleware.RequireSelf("email"), handlers.User.IsAdmin)
	router.GET("/users/instructor/:email", jwt, middleware.RequireSelf("email"), handlers.User.IsInstructor)
	router.PATCH("/users/admin/:id", jwt, admin, handlers.User.PromoteAdmin)
	router.PATCH("/users/instructor/:id", handlers.User.PromoteInstructor)
	router.GET("/instructors", handlers.User.ListInstructors)
	router.GET("/instructor-user", handlers.User.ListInstructors)
	router.GET("/current-user/:email", handlers.User.GetByEmail)

	// ─── Classes ───────────────────────────────────────────────────────
	router.GET("/classes", handlers.Class.List)
	router.POST("/classes", handlers.Class.Create)
	router.GET("/approve-classes", handlers.Class.ListApproved)
	router.GET("/classes/instructor/:email", jwt, handlers.Class.ListByInstructor)
	router.GET("/admin/classes", jwt, admin, handlers.Class.List)
	router.PATCH("/classes/admin/:id", jwt, admin, handlers.Class.Approve)
	router.PATCH("/classe/admin/:id", jwt, admin, handlers.Class.Deny)
	router.PATCH("/select-course/:id", handlers.Class.ReserveSeat)

	// ─── Cart ──────────────────────────────────────────────────────────
	router.GET("/my-selected-class/:email", handlers.Cart.ListByOwner)
	router.POST("/new-selected-class", handlers.Cart.Add)
	router.DELETE("/selected-class-delete/:id", handlers.Cart.Remove)

	// ─── Payments ──────────────────────────────────────────────────────
	router.POST("/create-payment-intent", jwt, limit("payment-intent"), handlers.Payment.CreateIntent)
	router.POST("/payments", jwt, limit("payments"), handlers.Payment.Record)
	router.GET("/payments", handlers.Payment.List)

	// ─── Feedback ──────────────────────────────────────────────────────
	router.POST("/admin/feedback", handlers.Feedback.Submit)

	return router
}
