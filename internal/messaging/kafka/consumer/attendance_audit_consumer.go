package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"supplyhr/internal/audit"
	"supplyhr/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceSessions folds attendance session events into the audit
// trail. Malformed messages are committed and dropped; audit append
// failures leave the message uncommitted so it is retried.
func ConsumeAttendanceSessions(
	ctx context.Context,
	reader *kafkago.Reader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_sessions")
	log.Info("attendance session consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance session consumer stopped")
				return
			}
			log.Error("fetch attendance session message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceSessionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance session event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = auditService.Record(ctx, event.CompanyID, audit.RecordRequest{
			ActorID:    event.EmployeeID,
			Action:     event.EventType,
			EntityType: "attendance",
			EntityID:   event.RecordID,
			Message:    fmt.Sprintf("attendance %s on %s", event.Status, event.Date),
			Meta: map[string]any{
				"date":       event.Date,
				"status":     event.Status,
				"request_id": event.RequestID,
			},
		})
		if err != nil {
			log.Error("append attendance audit entry failed",
				zap.String("record_id", event.RecordID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance session message failed", zap.Error(err))
			continue
		}

		log.Info("attendance session event audited",
			zap.String("record_id", event.RecordID),
			zap.String("event_type", event.EventType),
		)
	}
}
