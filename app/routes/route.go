package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/tiendita/storefront/app/handlers"
	"github.com/tiendita/storefront/app/middlewares"
	"github.com/tiendita/storefront/app/repositories"
	"github.com/tiendita/storefront/app/services"
	"github.com/tiendita/storefront/app/utils/renderer"
	"github.com/tiendita/storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, sessionStore sessions.SessionStore) *mux.Router {
	rnd := renderer.New()
	validate := validator.New()

	catalogRepo := repositories.NewCatalogRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	userRepo := repositories.NewUserRepository(db)

	cartSvc := services.NewCartService(cartRepo, cartItemRepo, catalogRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, cartItemRepo, catalogRepo, orderRepo, orderItemRepo, userRepo)

	productHandler := handlers.NewProductHandler(catalogRepo, rnd)
	cartHandler := handlers.NewCartHandler(cartSvc, sessionStore, rnd, validate)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, cartSvc, sessionStore, rnd)
	orderHandler := handlers.NewOrderHandler(orderRepo, checkoutSvc, sessionStore, rnd, validate)

	router := mux.NewRouter()
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middlewares.CartCountMiddleware(sessionStore))

	router.HandleFunc("/products", productHandler.List).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")

	router.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	router.HandleFunc("/cart/items/{id}", cartHandler.UpdateItem).Methods("PUT")
	router.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")
	router.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE")

	router.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")

	router.HandleFunc("/orders", orderHandler.List).Methods("GET")
	router.HandleFunc("/orders/{code}", orderHandler.DetailByCode).Methods("GET")
	router.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods("PUT")

	return router
}
