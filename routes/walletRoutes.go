package routes

import (
	"color-rush/controllers"

	"github.com/gin-gonic/gin"
)

func WalletRoutes(r *gin.Engine, wallets *controllers.MongoWallets) {
	r.GET("/api/wallet", controllers.GetWalletHandler(wallets))
	r.GET("/api/transactions", controllers.GetTransactionsHandler(wallets))
}
