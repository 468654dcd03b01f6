// File: beresin/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beresin/config"
	"beresin/cron"
	"beresin/database"
	orderRepoPkg "beresin/database/repository/order"
	profileRepoPkg "beresin/database/repository/profile"
	userRepoPkg "beresin/database/repository/user"
	"beresin/handlers"
	"beresin/middleware"
	"beresin/routes"
	ordersvc "beresin/services/order"
	"beresin/services/payment"
	syncsvc "beresin/services/sync"
	usersvc "beresin/services/user"
	"beresin/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	profileRepo := profileRepoPkg.NewMongoProfileRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// event publisher on the sync queue.
	queueClient := cron.NewSyncQueueClient()
	defer queueClient.Close()
	publisher := syncsvc.NewAsynqPublisher(queueClient, logger)

	// triggered handlers.
	syncEngine := &syncsvc.AvailabilitySyncEngine{
		Logger:   logger,
		Profiles: profileRepo,
	}
	recomputer := &syncsvc.BusyDatesRecomputer{
		Logger:   logger,
		Orders:   orderRepo,
		Profiles: profileRepo,
	}
	refundHandler := &syncsvc.CancellationRefundHandler{
		Logger: logger,
		Users:  userRepo,
	}

	// services.
	orderService := &ordersvc.DefaultOrderService{
		Logger:         logger,
		Orders:         orderRepo,
		Sync:           syncEngine,
		Publisher:      publisher,
		PaymentTimeout: time.Duration(config.AppConfig.PaymentTimeoutMinutes) * time.Minute,
	}
	userService := &usersvc.DefaultUserService{
		Logger:   logger,
		Users:    userRepo,
		Profiles: profileRepo,
	}
	gateway := payment.NewGatewayAdapter(
		logger,
		orderRepo,
		userRepo,
		utils.GetCacheClient(),
		publisher,
		config.AppConfig.MidtransServerKey,
		config.AppConfig.MidtransProduction,
	)

	// background worker: order events + periodic expired-order sweep.
	cron.InitSyncWorker(cron.WorkerDeps{
		Sync:      syncEngine,
		Recompute: recomputer,
		Refund:    refundHandler,
		Orders:    orderService,
	})

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// handlers and routes.
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(gateway)
	userHandler := handlers.NewUserHandler(userService)
	routes.RegisterRoutes(router, orderHandler, paymentHandler, userHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
