package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-order-service/internal/cart"
	"storefront-order-service/internal/config"
	"storefront-order-service/internal/logger"
	"storefront-order-service/internal/rabbit"
	"storefront-order-service/internal/repository"
	"storefront-order-service/internal/server"
	"storefront-order-service/internal/service"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "storefront-orders",
	Short:         "Storefront order service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          func(cmd *cobra.Command, _ []string) error { return serve(cmd.Context()) },
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the checkout consumer",
	RunE:  func(cmd *cobra.Command, _ []string) error { return serve(cmd.Context()) },
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes for the orders collection and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		logger.Setup(cfg.AppEnv)

		client, err := connectMongo(cmd.Context(), cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		repo := repository.NewMongoOrderRepository(client.Database(cfg.MongoDBName))
		if err := repo.EnsureIndexes(cmd.Context()); err != nil {
			return err
		}
		logger.L.Info("indexes created", "db", cfg.MongoDBName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, indexesCmd)
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func serve(parent context.Context) error {
	cfg := config.Load()
	logger.Setup(cfg.AppEnv)
	if cfg.AppEnv == "production" || cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositorio
	var repo service.OrderRepository
	if cfg.OrderStore == "memory" {
		logger.L.Warn("using in-memory order store, data is lost on restart")
		repo = repository.NewMemoryOrderRepository()
	} else {
		client, err := connectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		mrepo := repository.NewMongoOrderRepository(client.Database(cfg.MongoDBName))
		if err := mrepo.EnsureIndexes(ctx); err != nil {
			logger.L.Warn("could not create indexes", "error", err)
		}
		repo = mrepo
	}

	// RabbitMQ (opcional)
	var pub service.Publisher = service.NoopPublisher()
	var amqpConn *amqp091.Connection
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			return fmt.Errorf("rabbitmq dial: %w", err)
		}
		amqpConn = conn
		defer amqpConn.Close()

		pubCh, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("rabbitmq channel: %w", err)
		}
		p, err := rabbit.NewPublisher(pubCh)
		if err != nil {
			return err
		}
		pub = p
	}

	orderService := service.NewOrderService(repo, pub, service.Options{
		RecomputeTotal: cfg.RecomputeTotal,
		StatusGuard:    cfg.OrderStatusGuard,
	})
	authService := service.NewAuthService(cfg.JWTSecret)

	if amqpConn != nil {
		consCh, err := amqpConn.Channel()
		if err != nil {
			return fmt.Errorf("rabbitmq channel: %w", err)
		}
		if err := rabbit.SetupConsumers(ctx, consCh, orderService); err != nil {
			return err
		}
	}

	// Carrito: Redis si está configurado, memoria si no
	var store cart.Store = cart.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		store = cart.NewRedisStore(rdb, cfg.CartTTL)
	}
	cartService := cart.NewService(store, orderService)

	r := server.NewRouter(server.Deps{
		Orders:        orderService,
		Cart:          cartService,
		Auth:          authService,
		AdminAuth:     cfg.AdminAuth,
		AllowRefunded: cfg.PaymentAllowRefunded,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("order service listening", "port", cfg.Port, "store", cfg.OrderStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
