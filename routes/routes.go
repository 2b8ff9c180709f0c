package routes

import (
	"net/http"

	"mesa/auth"
	"mesa/ingredients"
	"mesa/menuitems"
	"mesa/middleware"
	"mesa/mq"
	"mesa/purchases"
	"mesa/ratelim"
	"mesa/recipes"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/login/", ratelim.RateLimit(auth.Login))
	router.POST("/api/logout/", middleware.Authenticate(auth.Logout))
}

func AddIngredientRoutes(router *httprouter.Router) {
	router.GET("/api/ingredients/", middleware.Authenticate(ingredients.GetIngredients))
	router.DELETE("/api/ingredients/:id/", middleware.Authenticate(ingredients.DeleteIngredient))
	router.POST("/api/store-ingredient/", middleware.Authenticate(ingredients.StoreIngredient))
	router.PATCH("/api/update-ingredient/:id/", middleware.Authenticate(ingredients.UpdateIngredient))
}

func AddMenuItemRoutes(router *httprouter.Router) {
	router.GET("/api/menu-items/", middleware.Authenticate(menuitems.GetMenuItems))
	router.DELETE("/api/menu-items/:id/", middleware.Authenticate(menuitems.DeleteMenuItem))
	router.PUT("/api/menu-items/:id/photo", middleware.Authenticate(menuitems.UploadPhoto))
	// Open by design: this endpoint backs the public menu page.
	router.GET("/api/get-menu-items/", menuitems.SearchMenuItems)
	router.POST("/api/store-menu-item/", middleware.Authenticate(menuitems.StoreMenuItem))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.POST("/api/store-reciperequirement/", middleware.Authenticate(recipes.StoreRequirement))
}

func AddPurchaseRoutes(router *httprouter.Router) {
	router.GET("/api/purchases/", middleware.Authenticate(purchases.GetPurchases))
	router.POST("/api/store-purchase/", middleware.Authenticate(purchases.StorePurchase))
}

func AddEventRoutes(router *httprouter.Router, hub *mq.Hub) {
	router.GET("/ws/events", middleware.Authenticate(mq.WebSocketHandler(hub)))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/menupic/*filepath", http.Dir("static/menupic"))
}
