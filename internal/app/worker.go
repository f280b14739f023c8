package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supplyhr/internal/attendance"
	"supplyhr/internal/messaging/kafka"
	"supplyhr/internal/messaging/kafka/producer"
	"supplyhr/internal/shared/connection"

	"go.uber.org/zap"
)

func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	loc, err := attendanceLocation()
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	attendanceRepo := attendance.NewRepository(gormDB)
	attendanceService := attendance.NewServiceWithOutbox(sqlDB, attendanceRepo, nil, attendance.NewSystemClock(loc), outboxRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runAbsenceScan(ctx, attendanceRepo, attendanceService, loc, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runAbsenceScan backfills ABSENT records once per hour. MarkAbsentees is
// idempotent, so re-running for a day that was already scanned is a no-op.
func runAbsenceScan(
	ctx context.Context,
	repo attendance.Repository,
	service attendance.Service,
	loc *time.Location,
	logger *zap.Logger,
) {
	log := logger.Named("absence_scan")

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("absence scan stopped")
			return
		case <-ticker.C:
		}

		// Scan the previous day in the attendance zone; scanning a day
		// that is still in progress would mark people absent who simply
		// have not arrived yet.
		day := previousScanDay(time.Now(), loc)

		companyIDs, err := repo.ListCompanyIDs(ctx)
		if err != nil {
			log.Error("list companies failed", zap.Error(err))
			continue
		}

		for _, companyID := range companyIDs {
			marked, err := service.MarkAbsentees(ctx, companyID, day)
			if err != nil {
				log.Error("absence scan failed",
					zap.String("company_id", companyID),
					zap.Error(err),
				)
				continue
			}
			if marked > 0 {
				log.Info("absentees marked",
					zap.String("company_id", companyID),
					zap.String("date", day.Format("2006-01-02")),
					zap.Int("marked", marked),
				)
			}
		}
	}
}
