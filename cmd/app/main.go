package main

import (
	"fmt"
	"log/slog"
	"os"

	"storefront/cmd"
	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres/counterrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/returnrepo"
	"storefront/internal/adapters/out/smtp"
	"storefront/internal/jobs"
	"storefront/internal/notifications"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; in containers everything comes from the environment.
	_ = godotenv.Load(".env")

	config, err := cmd.ParseConfig()
	if err != nil {
		logger.Error("Failed to parse configuration", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(config)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&returnrepo.ReturnRequestDTO{},
		&counterrepo.CounterDTO{},
	); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	sender, err := smtp.NewSender(smtp.Config{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	})
	if err != nil {
		logger.Error("Failed to configure email sender", "error", err)
		os.Exit(1)
	}
	dispatcher := notifications.NewDispatcher(sender, logger)

	root := cmd.NewCompositionRoot(config, db, dispatcher, logger)

	jobManager := jobs.NewJobManager(
		root.CreateExpirePendingOrdersCommandHandler(),
		root.CreateSendReturnRemindersCommandHandler(),
		jobs.SweepConfig{
			PendingOrderTTL:   config.PendingOrderTTL,
			ReturnReminderAge: config.ReturnReminderAge,
		},
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(root, config.HTTPPort)
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateTransitionOrderStatusCommandHandler(),
		root.CreateRecordPaymentResultCommandHandler(),
		root.CreateCreateReturnRequestCommandHandler(),
		root.CreateTransitionReturnStatusCommandHandler(),
		root.CreateGetOrderTrackingQueryHandler(),
		root.CreateGetReturnsForOrderQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
