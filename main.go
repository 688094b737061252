package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emekaobi/storefront-backend/checkout"
	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/config"
	"github.com/emekaobi/storefront-backend/controllers"
	"github.com/emekaobi/storefront-backend/database"
	"github.com/emekaobi/storefront-backend/kafka"
	"github.com/emekaobi/storefront-backend/payment"
	"github.com/emekaobi/storefront-backend/prefs"
	"github.com/emekaobi/storefront-backend/repository"
	"github.com/emekaobi/storefront-backend/routes"
	"github.com/emekaobi/storefront-backend/sessions"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Datastores
	mongoClient, db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.DisconnectMongo(mongoClient); err != nil {
			logger.Log.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	// Payment gateway. A missing secret key is fatal config: checkout can
	// never succeed without it.
	gateway, err := payment.NewFlutterwaveClient(payment.FlutterwaveConfig{
		SecretKey:   cfg.FlutterwaveSecretKey,
		WebhookHash: cfg.FlutterwaveWebhookHash,
		RedirectURL: cfg.FlutterwaveRedirectURL,
		Currency:    cfg.Currency,
	})
	if err != nil {
		logger.Log.Fatal("Payment gateway configuration invalid", zap.Error(err))
	}

	// Order events are optional; without brokers checkout just skips them.
	var events checkout.EventPublisher
	var producer *kafka.OrderEventProducer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewOrderEventProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		defer producer.Close()
		events = producer
	}

	sessionManager := sessions.NewManager(sessions.NewRedisPersister(redisClient, cfg.CartTTL))
	coordinator := checkout.NewCoordinator(gateway, orderRepo, events, cfg.PhoneDigits, cfg.CheckoutTimeout)
	uiPrefs := prefs.NewStore()

	// Sweep attempts whose gateway callback never arrived and drop in-memory
	// carts for sessions idle past the cart TTL. Idle carts rehydrate from
	// Redis if the shopper comes back before the persisted copy expires.
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				coordinator.ExpireStale()
				sessionManager.EvictIdle(cfg.CartTTL)
			case <-sweepDone:
				return
			}
		}
	}()
	defer close(sweepDone)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.Register(router, cfg, routes.Controllers{
		Products: controllers.NewProductController(productRepo),
		Cart:     controllers.NewCartController(sessionManager, productRepo),
		Checkout: controllers.NewCheckoutController(coordinator, sessionManager, gateway),
		Orders:   controllers.NewOrderController(orderRepo, events),
		Prefs:    controllers.NewPrefsController(uiPrefs),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Storefront backend running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}
