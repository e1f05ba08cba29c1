package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopapi/internal/api/handlers"
	"shopapi/internal/api/middleware"
	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/health"
	"shopapi/internal/metrics"
	repository "shopapi/internal/repositories"
	service "shopapi/internal/services"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg)

	credentials := auth.New([]byte(cfg.Security.JWTKey), cfg.Security.TokenTTL)

	userService := service.NewUserService(repos.User, rateLimiter, credentials)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.Product)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(credentials, repos.User)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env))

	base := cfg.HTTPServer.BasePath

	// The guard is opt-in per route: cart, order, and user update/delete
	// routes require a bearer token; signup/signin and the catalog are public.
	guard := authMiddleware.Authenticate

	routerMux := http.NewServeMux()
	routerMux.HandleFunc(fmt.Sprintf("POST %s/users/signup", base), userHandler.Signup())
	routerMux.HandleFunc(fmt.Sprintf("POST %s/users/signin", base), userHandler.Signin())
	routerMux.HandleFunc(fmt.Sprintf("PUT %s/users/updateuser/{userId}", base), guard(userHandler.UpdateUser()))
	routerMux.HandleFunc(fmt.Sprintf("DELETE %s/users/deleteuser/{userId}", base), guard(userHandler.DeleteUser()))
	routerMux.HandleFunc(fmt.Sprintf("GET %s/products", base), productHandler.ListProducts())
	routerMux.HandleFunc(fmt.Sprintf("POST %s/products/addproduct", base), productHandler.CreateProduct())
	routerMux.HandleFunc(fmt.Sprintf("PUT %s/products/updateproduct/{productId}", base), productHandler.UpdateProduct())
	routerMux.HandleFunc(fmt.Sprintf("DELETE %s/products/deleteproduct/{productId}", base), productHandler.DeleteProduct())
	routerMux.HandleFunc(fmt.Sprintf("GET %s/products/search", base), productHandler.SearchProducts())
	routerMux.HandleFunc(fmt.Sprintf("GET %s/products/{productId}", base), productHandler.GetProduct())
	routerMux.HandleFunc(fmt.Sprintf("POST %s/carts/add", base), guard(cartHandler.AddItem()))
	routerMux.HandleFunc(fmt.Sprintf("GET %s/carts/{userId}", base), guard(cartHandler.GetCart()))
	routerMux.HandleFunc(fmt.Sprintf("PUT %s/carts/update/{userId}/{productId}", base), guard(cartHandler.UpdateItem()))
	routerMux.HandleFunc(fmt.Sprintf("DELETE %s/carts/remove/{userId}/{productId}", base), guard(cartHandler.RemoveItem()))
	routerMux.HandleFunc(fmt.Sprintf("DELETE %s/carts/clear/{userId}", base), guard(cartHandler.ClearCart()))
	routerMux.HandleFunc(fmt.Sprintf("POST %s/orders/place", base), guard(orderHandler.PlaceOrder()))
	routerMux.HandleFunc(fmt.Sprintf("GET %s/orders/user/{userId}", base), guard(orderHandler.ListOrders()))
	routerMux.HandleFunc(fmt.Sprintf("GET %s/orders/{orderId}", base), guard(orderHandler.GetOrder()))
	routerMux.HandleFunc(fmt.Sprintf("PUT %s/orders/update/{orderId}", base), guard(orderHandler.UpdateStatus()))
	routerMux.HandleFunc(fmt.Sprintf("PUT %s/orders/payment/{orderId}", base), guard(orderHandler.UpdatePaymentStatus()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	server := http.Server{
		Addr:        cfg.HTTPServer.Addr,
		Handler:     handler,
		IdleTimeout: cfg.HTTPServer.IdleTimeout,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.HTTPServer.Addr), slog.String("base_path", base))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
