// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"ecotrack-api/controllers"
	"ecotrack-api/middleware"
	"ecotrack-api/routes"
	"ecotrack-api/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	utils.EnsureIndexes(client)

	// Initialize controllers
	userController := controllers.NewUserController(client)
	productController := controllers.NewProductController(client)
	orderController := controllers.NewOrderController(client, emailService)
	paymentController := controllers.NewPaymentController(client)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.Recover)

	// Register routes
	routes.RegisterRoutes(router, userController, productController, orderController, paymentController)

	// CORS for the SPA origin
	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:5173"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{clientURL}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(router))))
}
