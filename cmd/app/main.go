package main

import (
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"strconv"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/codesrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/earningsrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/payoutrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envVariable("HTTP_PORT", "8080"),
		DBHost:     envVariable("DB_HOST", "localhost"),
		DBPort:     envVariable("DB_PORT", "5432"),
		DBUser:     envVariable("DB_USER", "postgres"),
		DBPassword: envVariable("DB_PASSWORD", "postgres"),
		DBName:     envVariable("DB_NAME", "dispatch"),
		DBSslMode:  envVariable("DB_SSLMODE", "disable"),

		CommissionRate:  envVariable("COMMISSION_RATE", "0.15"),
		CourierBaseFee:  envVariable("COURIER_BASE_FEE", "50.00"),
		CourierPerKmFee: envVariable("COURIER_PER_KM_FEE", "10.00"),

		EarningsHoldHours:      intEnvVariable("EARNINGS_HOLD_HOURS", 72),
		QrTTLMinutes:           intEnvVariable("QR_TTL_MINUTES", 60),
		OtpTTLMinutes:          intEnvVariable("OTP_TTL_MINUTES", 10),
		DispatchMaxWaitMinutes: intEnvVariable("DISPATCH_MAX_WAIT_MINUTES", 15),
	}
}

func envVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnvVariable(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %v", key, err)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&deliveryrepo.DeliveryDTO{},
		&codesrepo.CodeDTO{},
		&earningsrepo.EntryDTO{},
		&payoutrepo.PayoutDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(stdhttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateCourierCommandHandler(),
		app.CreateRecordHeartbeatCommandHandler(),
		app.CreatePlaceOrderCommandHandler(),
		app.CreateApproveOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateIssueVerificationCodeCommandHandler(),
		app.CreateConfirmPickupCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateRequestPayoutCommandHandler(),
		app.CreateResolvePayoutCommandHandler(),
		app.CreateGetDispatchBacklogQueryHandler(),
		app.CreateGetPayeeEarningsQueryHandler(),
		app.CreateGetPayoutsForReviewQueryHandler(),
		app.CreateGetCouriersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
