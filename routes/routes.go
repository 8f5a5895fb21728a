package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paint-estimator/controllers"
	"paint-estimator/middleware"
)

// SetupRouter wires the form page, downloads and the JSON API onto one engine.
func SetupRouter(rc *controllers.RoomController, origins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger))
	r.SetHTMLTemplate(controllers.Templates())

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Form mode
	r.GET("/", rc.Index)
	r.POST("/rooms", rc.SubmitForm)
	r.POST("/rooms/:id/delete", rc.DeleteFromForm)
	r.GET("/export/csv", rc.DownloadCSV)
	r.GET("/export/xlsx", rc.DownloadXLSX)

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.ListRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/export.csv", rc.DownloadCSV)
			rooms.GET("/export.xlsx", rc.DownloadXLSX)
			rooms.DELETE("/:position", rc.DeleteRoom)
		}
	}

	return r
}
