package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/shiftline/payroll-backend-go/internal/config"
	appHTTP "github.com/shiftline/payroll-backend-go/internal/handler/http"
	"github.com/shiftline/payroll-backend-go/internal/pkg/database"
	"github.com/shiftline/payroll-backend-go/internal/pkg/jwt"
	"github.com/shiftline/payroll-backend-go/internal/pkg/storage"
	"github.com/shiftline/payroll-backend-go/internal/repository/postgresql"
	reportService "github.com/shiftline/payroll-backend-go/internal/service/report"
	runService "github.com/shiftline/payroll-backend-go/internal/service/run"
	tenantService "github.com/shiftline/payroll-backend-go/internal/service/tenant"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	txRunner := postgresql.NewTxRunner(db)
	runRepo := postgresql.NewRunRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	runSvc := runService.NewRunService(txRunner, runRepo, adjustmentRepo, employeeRepo, timeRecordRepo, settingsRepo)
	settingsSvc := tenantService.NewSettingsService(settingsRepo)
	reportSvc := reportService.NewReportService(runSvc, fileStorage)

	runHandler := appHTTP.NewRunHandler(runSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(jwtService, runHandler, settingsHandler, reportHandler, cfg.Storage.BasePath)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
