package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/configs"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/cache"
	httpadapter "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/http"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/http/middleware"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/kafka"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/queue"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/adapter/repo"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/logging"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)
	log := logging.New("app")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	cancel()

	log.Info("garden-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq: status-change events out, notifications in
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	menuRepo := repo.NewMySQLMenuRepo(db, cfg.Pricing.Currency)
	addrRepo := repo.NewMySQLAddressRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)

	statusCache := cache.NewRedisStatusCache(rdb, cfg.Cache.StatusTTL)
	menuCache := cache.NewRedisMenuCache(rdb, cfg.Cache.MenuTTL)
	idem := cache.NewRedisIdempotencyStore(rdb, 10*time.Minute)

	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	setupQueue(ch)
	setupKafkaListener(cfg, orderRepo, statusCache)

	// usecases
	pricing := usecase.Pricing{
		Currency:       cfg.Pricing.Currency,
		DeliveryFee:    cfg.Pricing.DeliveryFee,
		TaxBasisPoints: cfg.Pricing.TaxBasisPoints,
	}
	placeUC := usecase.NewPlaceOrder(orderRepo, menuRepo, idem, pricing)
	updateUC := usecase.NewUpdateOrderStatus(orderRepo, statusCache, producer, logging.New("usecase"))
	inventoryUC := usecase.NewInventory(menuRepo, menuCache)

	// handlers + router
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(httpadapter.Handlers{
		Auth:    httpadapter.NewAuthHandler(cfg, userRepo),
		Menu:    httpadapter.NewMenuHandler(menuRepo, menuCache),
		Orders:  httpadapter.NewOrderHandler(placeUC, orderRepo, statusCache),
		Address: httpadapter.NewAddressHandler(addrRepo),
		Admin:   httpadapter.NewAdminHandler(orderRepo, updateUC, inventoryUC),
	}, authz)

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = db.Close()
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}

// setupQueue consumes the status-change events this same service
// publishes and hands them to the notification dispatcher.
func setupQueue(ch *amqp091.Channel) {
	h := queue.NewNotifyHandler(logging.New("notify"))

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("order.status_changed.q", queue.JSONHandler[usecase.OrderStatusChangedMsg]{HandleFunc: h.HandleStatusChanged})

	if err := router.Start(); err != nil {
		panic(err)
	}
}

// setupKafkaListener follows status changes issued by the kitchen
// tooling, which writes to Kafka rather than calling our admin API.
func setupKafkaListener(cfg configs.Config, orders usecase.OrderRepo, statusCache usecase.StatusCache) {
	if len(cfg.Kafka.Brokers) == 0 {
		return
	}
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewOrderStatusChangedHandler(orders, statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle, logging.New("kafka"))

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			panic(err)
		}
	}()
}
