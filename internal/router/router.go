package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mroshb/shooty_game/internal/config"
	"github.com/mroshb/shooty_game/internal/handlers"
	"github.com/mroshb/shooty_game/internal/middleware"
	"github.com/mroshb/shooty_game/internal/models"
	"github.com/mroshb/shooty_game/pkg/errors"
)

// SetupRouter wires every API route onto a new gin engine.
func SetupRouter(cfg *config.Config, h *handlers.HandlerManager, limiter middleware.Limiter) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.Health)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: errors.ErrCodeNotFound, Message: "route not found"})
	})

	rateLimit := middleware.RateLimit(limiter, cfg.RateLimitPerUser, cfg.RateLimitPerIP)
	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api")
	{
		// ----- public -----
		api.POST("/users/signin", rateLimit, h.SignIn)
		api.POST("/users", middleware.OptionalAuth(cfg.JWTSecret), rateLimit, h.Register)

		// ----- authenticated -----
		authed := api.Group("/")
		authed.Use(auth, rateLimit)
		{
			authed.GET("/users", adminOnly, h.ListUsers)
			authed.GET("/users/:id", h.GetUser)
			authed.PUT("/users/:id", h.UpdateUser)
			authed.DELETE("/users/:id", h.DeleteUser)
			authed.GET("/users/:id/weapons", h.ListUserWeapons)
			authed.POST("/users/:id/weapons", h.PurchaseWeapon)
			authed.DELETE("/users/:id/weapons/:weaponId", h.RemoveWeapon)
			authed.GET("/users/:id/friends", h.ListFriends)
			authed.DELETE("/users/:id/friends/:friendId", h.Unfriend)

			authed.GET("/friendreq/requester/:userId", h.ListSentRequests)
			authed.GET("/friendreq/receiver/:userId", h.ListReceivedRequests)
			authed.GET("/friendreq/:id", h.GetFriendRequest)
			authed.POST("/friendreq", h.CreateFriendRequest)
			authed.PUT("/friendreq/:id", h.UpdateFriendRequest)
			authed.DELETE("/friendreq/:id", adminOnly, h.DeleteFriendRequest)

			authed.GET("/weapontypes", adminOnly, h.ListWeaponTypes)
			authed.GET("/weapontypes/:id", adminOnly, h.GetWeaponType)
			authed.POST("/weapontypes", adminOnly, h.CreateWeaponType)
			authed.PUT("/weapontypes/:id", adminOnly, h.UpdateWeaponType)
			authed.DELETE("/weapontypes/:id", adminOnly, h.DeleteWeaponType)

			authed.GET("/weapons", h.ListWeapons)
			authed.GET("/weapons/:id", h.GetWeapon)
			authed.POST("/weapons", adminOnly, h.CreateWeapon)
			authed.PUT("/weapons/:id", adminOnly, h.UpdateWeapon)
			authed.DELETE("/weapons/:id", adminOnly, h.DeleteWeapon)

			authed.GET("/scores", h.ListScores)
			authed.GET("/scores/leaderboard", h.Leaderboard)
			authed.GET("/scores/:id", h.GetScore)
			authed.POST("/scores", h.CreateScore)
			authed.PUT("/scores/:id", adminOnly, h.UpdateScore)
			authed.DELETE("/scores/:id", adminOnly, h.DeleteScore)
		}
	}

	return r
}
