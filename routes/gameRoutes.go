package routes

import (
	"github.com/gin-gonic/gin"

	"color-rush/controllers"
)

func GameRoutes(r *gin.Engine, engine *controllers.DrawEngine, sessions *controllers.SessionManager) {
	r.GET("/api/round", controllers.GetRoundHandler(engine))
	r.GET("/api/round/outcomes", controllers.GetOutcomesHandler(engine))
	r.POST("/api/bets", controllers.PlaceBetHandler(sessions))
	r.GET("/api/bets", controllers.GetBetsHandler(sessions))
}
