package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotel-reservation/controllers"
	"hotel-reservation/middleware"
	"hotel-reservation/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	db *gorm.DB,
	jwt *utils.JWTService,
	authController *controllers.AuthController,
	hotelController *controllers.HotelController,
	roomController *controllers.RoomController,
	bookingController *controllers.BookingController,
	userController *controllers.UserController,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// public dashboard; picks up the actor when a token is present
		hotel := api.Group("/hotel")
		hotel.Use(middleware.OptionalAuth(db, jwt))
		{
			hotel.GET("", hotelController.Dashboard)
			hotel.POST("/search", hotelController.Search)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(db, jwt))
		{
			rooms := protected.Group("/rooms")
			{
				rooms.GET("", roomController.List)
				rooms.GET("/:id", roomController.Show)
				rooms.POST("", roomController.Create)
				rooms.PUT("/:id", roomController.Update)
				rooms.PATCH("/:id", roomController.Update)
				rooms.DELETE("/:id", roomController.Delete)
			}

			bookings := protected.Group("/bookings")
			{
				bookings.GET("", bookingController.List)
				bookings.POST("", bookingController.Create)
				bookings.GET("/:id", bookingController.Show)
				bookings.PUT("/:id", bookingController.Update)
				bookings.DELETE("/:id", bookingController.Delete)
				bookings.POST("/:id/cancel", bookingController.Cancel)
				bookings.POST("/:id/checkin", bookingController.CheckIn)
				bookings.POST("/:id/checkout", bookingController.CheckOut)
			}

			users := protected.Group("/users")
			{
				users.GET("", userController.List)
				users.GET("/:id", userController.Show)
				users.PUT("/:id", userController.Update)
				users.DELETE("/:id", userController.Delete)
			}
		}
	}

	return r
}
