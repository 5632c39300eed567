package auditlog

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip, requestID, status string) error
}

type service struct {
	repo   Repository
	writer *kafka.Writer
}

// NewService builds the audit service. When writer is nil, entries are
// written straight to the store instead of going through Kafka.
func NewService(repo Repository, writer *kafka.Writer) Service {
	return &service{repo: repo, writer: writer}
}

// LogAction records an audit entry. Audit failures are logged and swallowed;
// they must never fail the request that produced them.
func (s *service) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip, requestID, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   string(detailsJSON),
		IPAddress: ip,
		RequestID: requestID,
		Status:    status,
	}

	if s.writer != nil {
		payload, err := json.Marshal(entry)
		if err == nil {
			if err := s.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err == nil {
				return nil
			}
			log.Printf("⚠️ audit publish failed, writing directly: action=%s", action)
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ audit write failed: action=%s err=%v", action, err)
		return err
	}
	return nil
}

// StartConsumer drains the audit topic into the store. It runs until the
// reader fails, which only happens on shutdown or broker loss.
func StartConsumer(repo Repository, brokers []string, topic string) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: "auditlog-writer",
	})

	go func() {
		defer reader.Close()
		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("⚠️ audit consumer stopped: %v", err)
				return
			}

			var entry AuditLog
			if err := json.Unmarshal(msg.Value, &entry); err != nil {
				log.Printf("⚠️ audit consumer: bad payload: %v", err)
				continue
			}
			entry.ID = 0

			if err := repo.Create(context.Background(), &entry); err != nil {
				log.Printf("⚠️ audit consumer: write failed: %v", err)
			}
		}
	}()
}
