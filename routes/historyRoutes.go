package routes

import (
	"color-rush/controllers"

	"github.com/gin-gonic/gin"
)

func HistoryRoutes(r *gin.Engine, history *controllers.MongoHistory) {
	r.GET("/api/history", controllers.GetHistoryHandler(history))
}
