package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gebedsrooster/handlers"
	"gebedsrooster/middleware"
	"gebedsrooster/utils"
)

// RegisterScheduleRoutes registers the read side of the calendar.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.GET("", hb.GetScheduleHandler)
		api.GET("/stats", hb.GetStatsHandler)
		api.GET("/options", hb.GetOptionsHandler)
		api.GET("/slots/:datetime", hb.GetSlotHandler)
		api.GET("/stream", hb.StreamScheduleHandler)
	}
}

// RegisterRegistrationRoutes registers sign-up endpoints. Anonymous visitors
// may sign up; a valid token attaches the registration to the account.
func RegisterRegistrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/registrations")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.Verifier, true))
		api.POST("", hb.SignUpHandler)
		api.POST("/quick", hb.QuickSignUpHandler)
		api.DELETE("/:id", hb.DeleteRegistrationHandler)
	}
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signin", hb.SignInHandler)
		api.POST("/signup", hb.AccountSignUpHandler)
		api.POST("/password/reset", hb.RequestPasswordResetHandler)
		api.POST("/password/confirm", hb.ConfirmPasswordResetHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware(hb.Verifier, false))
		protected.POST("/signout", hb.SignOutHandler)
		protected.PUT("/profile", hb.UpdateProfileHandler)
		protected.GET("/me", hb.MeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.CheckedAt.IsZero() && !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Gebedsrooster"})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Metrics == nil {
		return
	}
	r.GET("/metrics", gin.WrapH(hb.Metrics))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	corsConfig := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin.
	corsConfig.AllowCredentials = !(len(allowedOrigins) == 1 && allowedOrigins[0] == "*")
	r.Use(cors.New(corsConfig))

	RegisterScheduleRoutes(r, hb)
	RegisterRegistrationRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, hb)
}
