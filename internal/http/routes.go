package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/David-H-L/Backend/internal/auth"
	"github.com/David-H-L/Backend/internal/ws"
)

// Setup configures all application routes and middleware.
func Setup(router *gin.Engine, api *API, hub *ws.Hub, tokens *auth.Manager, corsOrigin string) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	if corsOrigin == "" {
		corsOrigin = "*"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	limiter := NewIPRateLimiter(rate.Limit(writeRateRPS), writeRateBurst)
	go limiter.CleanupLoop(10 * time.Minute)

	authRequired := AuthMiddleware(tokens)

	v1 := router.Group("/api/v1")
	{
		// Kept off the /users group so it cannot shadow /users/:id.
		v1.GET("/profile", authRequired, api.GetProfile)

		users := v1.Group("/users")
		{
			users.POST("", RateLimitMiddleware(limiter), api.CreateUser)
			users.POST("/login", api.Login)
			users.GET("", api.GetUsers)
			users.GET("/:id", api.GetUser)
			users.PATCH("/:id", authRequired, api.UpdateUser)
			users.DELETE("/:id", authRequired, api.DeleteUser)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", authRequired, RateLimitMiddleware(limiter), api.CreatePost)
			posts.GET("", api.GetPosts)
			posts.GET("/:id", api.GetPost)
			posts.PATCH("/:id", authRequired, api.UpdatePost)
			posts.DELETE("/:id", authRequired, api.DeletePost)
		}

		votes := v1.Group("/votes")
		{
			votes.POST("", api.CreateVote)
			votes.GET("", api.GetVotes)
			votes.GET("/:id", api.GetVote)
			votes.PATCH("/:id", api.UpdateVote)
			votes.DELETE("/:id", api.DeleteVote)
		}

		chats := v1.Group("/chats")
		{
			chats.POST("/send_message", authRequired, api.SendMessage)
			chats.GET("/history/:userId", authRequired, api.GetHistory)
		}
	}

	// Websocket attach. Browsers cannot set headers on the upgrade
	// request, so the token rides in the query string.
	router.GET("/ws", func(c *gin.Context) {
		claims, err := tokens.Validate(c.Query("token"))
		if err != nil {
			fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		ws.ServeWs(hub, claims.Subject, api.Chat.HandleFrame, c.Writer, c.Request)
	})

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "page not found ...")
	})
}
