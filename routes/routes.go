// routes/routes.go
package routes

import (
	"net/http"
	"os"

	"ecotrack-api/controllers"
	"ecotrack-api/middleware"
	"ecotrack-api/models"
	"ecotrack-api/utils"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, orderController *controllers.OrderController, paymentController *controllers.PaymentController) {
	// Root health/info endpoint
	router.HandleFunc("/", apiInfo).Methods("GET")

	// Static serving of the uploads directory
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", userController.Register).Methods("POST")
	auth.HandleFunc("/login", userController.Login).Methods("POST")

	profile := api.PathPrefix("/auth/profile").Subrouter()
	profile.Use(middleware.AuthMiddleware)
	profile.HandleFunc("", userController.GetProfile).Methods("GET")
	profile.HandleFunc("", userController.UpdateProfile).Methods("PUT")

	// Public product routes
	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", productController.GetProducts).Methods("GET")
	products.HandleFunc("/categories", productController.GetCategories).Methods("GET")
	products.HandleFunc("/{id}", productController.GetProductByID).Methods("GET")
	products.HandleFunc("/{id}/journey", productController.GetJourney).Methods("GET")

	// Product mutation requires a business or admin account; hiding the
	// buttons in the UI is not an authorization check.
	manage := api.PathPrefix("/products").Subrouter()
	manage.Use(middleware.AuthMiddleware)
	manage.Use(middleware.RequireRole(models.RoleBusiness, models.RoleAdmin))
	manage.HandleFunc("", productController.CreateProduct).Methods("POST")
	manage.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	manage.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Order routes
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.AuthMiddleware)
	orders.HandleFunc("", orderController.CreateOrder).Methods("POST")
	orders.HandleFunc("/myorders", orderController.GetMyOrders).Methods("GET")
	orders.HandleFunc("/{id}", orderController.GetOrderByID).Methods("GET")
	orders.HandleFunc("/{id}/pay", orderController.UpdateOrderToPaid).Methods("PUT")
	orders.HandleFunc("/{id}/status", orderController.UpdateOrderStatus).Methods("PUT")

	// Payment initiation requires auth; callbacks are the gateway's
	// server-to-server surface and stay open.
	payment := api.PathPrefix("/payment").Subrouter()
	payment.HandleFunc("/jazzcash/callback", paymentController.JazzcashCallback).Methods("POST")
	payment.HandleFunc("/easypaisa/callback", paymentController.EasypaisaCallback).Methods("POST")

	initiate := api.PathPrefix("/payment").Subrouter()
	initiate.Use(middleware.AuthMiddleware)
	initiate.HandleFunc("/stripe/create-intent", paymentController.StripeCreateIntent).Methods("POST")
	initiate.HandleFunc("/stripe/confirm", paymentController.StripeConfirm).Methods("POST")
	initiate.HandleFunc("/jazzcash/initiate", paymentController.JazzcashInitiate).Methods("POST")
	initiate.HandleFunc("/easypaisa/initiate", paymentController.EasypaisaInitiate).Methods("POST")

	// Catch-all for unmatched routes
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Route not found")
	})
}

func apiInfo(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "EcoTrack API is running",
		"version": "1.0.0",
		"mode":    envOr("APP_ENV", "development"),
		"endpoints": map[string]string{
			"auth":     "/api/auth - Authentication endpoints",
			"products": "/api/products - Product CRUD operations",
			"orders":   "/api/orders - Order management",
			"payments": "/api/payment - Payment processing",
		},
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
