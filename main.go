package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/handlers"
	"shopapi/internal/inventory"
	"shopapi/internal/middleware"
	"shopapi/internal/notifications"
	"shopapi/internal/orders"
	"shopapi/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureNotificationIndexes(db); err != nil {
		log.Printf("notification index warning: %v", err)
	}

	emitter := notifications.NewEmitter(db, config.AppEnv.NotificationBuffer)

	svc := orders.NewService(
		store.NewOrderStore(db),
		inventory.NewLedger(db),
		store.NewUserStore(db),
		store.NewAddressStore(db),
		store.NewRefundStore(db),
		emitter,
		store.NewTxRunner(client),
	)

	r := gin.Default()

	r.GET("/healthz", handlers.Health(db))

	secret := config.AppEnv.JWTSecret

	user := r.Group("/")
	user.Use(middleware.AuthGuard(secret))
	{
		user.POST("/createOrder", handlers.CreateOrder(svc))
		user.GET("/getAllOrder", handlers.GetMyOrders(svc))
		user.GET("/getSingleOrder/:id", handlers.GetSingleOrder(svc))
		user.PUT("/cancelOrder/:id", handlers.CancelOrder(svc))
		user.DELETE("/deleteOrder/:id", handlers.DeleteOrder(svc))
		user.POST("/refund-request/:orderid", handlers.RequestRefund(svc))
	}

	r.PUT("/updateOrderStatus/:id", middleware.AdminAuth(secret), handlers.UpdateOrderStatus(svc))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(secret))
	{
		admin.GET("/orders", handlers.AdminListOrders(svc))
		admin.POST("/orders/delete", handlers.BulkDeleteOrders(svc))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), config.AppEnv.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("server shutdown:", err)
	}

	emitter.Close()

	if err := client.Disconnect(ctx); err != nil {
		log.Println("mongo disconnect:", err)
	}
}
