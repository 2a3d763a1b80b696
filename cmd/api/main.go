package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/smartpos-api/internal/application/billing"
	"github.com/jhoicas/smartpos-api/internal/application/inventory"
	"github.com/jhoicas/smartpos-api/internal/application/notification"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/application/pricing"
	"github.com/jhoicas/smartpos-api/internal/application/usecase"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/email"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/lock"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/memory"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/messaging/kafka"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/smartpos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/smartpos-api/internal/interfaces/http"
	"github.com/jhoicas/smartpos-api/pkg/config"
	"github.com/jhoicas/smartpos-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage repos y runners transaccionales del driver elegido.
type storage struct {
	products      repository.ProductRepository
	stock         repository.StockRepository
	customers     repository.CustomerRepository
	invoices      repository.InvoiceRepository
	history       repository.PriceHistoryRepository
	notifications repository.NotificationRepository
	billingTx     billing.BillingTxRunner
	pricingTx     pricing.PricingTxRunner
	close         func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			products:      s.Products(),
			stock:         s.Stock(),
			customers:     s.Customers(),
			invoices:      s.Invoices(),
			history:       s.PriceHistory(),
			notifications: s.Notifications(),
			billingTx:     s,
			pricingTx:     s,
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnStart {
		// db comparte conexiones con el pool; se libera con pool.Close.
		if err := postgres.RunMigrations(postgres.OpenDB(pool)); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	txRunner := postgres.NewTxRunner(pool)
	return &storage{
		products:      postgres.NewProductRepository(pool),
		stock:         postgres.NewStockRepository(pool),
		customers:     postgres.NewCustomerRepository(pool),
		invoices:      postgres.NewInvoiceRepository(pool),
		history:       postgres.NewPriceHistoryRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
		billingTx:     txRunner,
		pricingTx:     txRunner,
		close:         pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Métricas
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewPrometheus(registry)

	// Correo
	var mailer ports.Mailer = email.DisabledSender{}
	if cfg.SMTP.Enabled() {
		mailer = email.NewGomailSender(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: recibos y alertas fallarán al enviarse")
	}

	// Candado de despacho (opcional)
	var locker ports.Locker
	if cfg.Redis.Addr != "" {
		redisClient := lock.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient)
	}

	// Eventos de precio (opcional)
	var publisher ports.PriceEventPublisher = ports.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafka.NewPricePublisher(cfg.Kafka.Brokers, cfg.Kafka.PriceTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		publisher = kp
	}

	receipts := billing.NewReceiptDispatcher(billing.ReceiptConfig{
		Workers:        cfg.Receipt.Workers,
		QueueSize:      cfg.Receipt.Queue,
		Subject:        cfg.Receipt.Subject,
		CurrencySymbol: cfg.Notify.CurrencySymbol,
	}, mailer, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name), appMetrics, log)

	productUC := usecase.NewProductUseCase(store.products)
	restockUC := inventory.NewRestockUseCase(store.stock, log)
	customerUC := billing.NewCustomerUseCase(store.customers)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		store.billingTx, store.products, store.customers, store.invoices,
		receipts, appMetrics, log,
	)
	ledgerUC := pricing.NewLedgerUseCase(store.pricingTx, store.products, store.history, publisher, appMetrics, log)
	scanUC := pricing.NewScanDropsUseCase(store.products, store.invoices)
	generateUC := notification.NewGenerateUseCase(scanUC, store.notifications, cfg.Notify.CurrencySymbol, appMetrics, log)
	dispatchUC := notification.NewDispatchUseCase(store.notifications, mailer, locker, notification.DispatchConfig{
		Subject: cfg.Notify.Subject,
		LockTTL: cfg.Notify.DispatchLockTTL,
	}, appMetrics, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SmartPOS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		RestockUC:     restockUC,
		CustomerUC:    customerUC,
		CreateInvoice: createInvoiceUC,
		PriceLedger:   ledgerUC,
		ScanDrops:     scanUC,
		Notifications: generateUC,
		Dispatch:      dispatchUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Enviar los recibos que quedaron en cola antes de cerrar la DB.
	receipts.Close()

	log.Info().Msg("aplicación detenida")
}
