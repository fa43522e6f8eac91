package console

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aquamarinepk/aqm"
	aqmevents "github.com/aquamarinepk/aqm/events"

	"github.com/ecoeats/seller-console/internal/events"
)

// AuditEntry records one state-changing action a seller performed.
type AuditEntry struct {
	StoreID   string    `json:"store_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// AuditLogger writes seller actions to the structured log and, when a
// publisher is configured, mirrors successful ones onto the seller actions
// topic. Publishing is best effort; the console never fails a request over
// a missing broker.
type AuditLogger struct {
	logger    aqm.Logger
	publisher aqmevents.Publisher
}

func NewAuditLogger(logger aqm.Logger, publisher aqmevents.Publisher) *AuditLogger {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &AuditLogger{logger: logger, publisher: publisher}
}

// Log records an audit entry.
func (a *AuditLogger) Log(ctx context.Context, entry AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	a.logger.Info("audit",
		"store_id", entry.StoreID,
		"action", entry.Action,
		"target", entry.Target,
		"success", entry.Success,
		"timestamp", entry.Timestamp.Format(time.RFC3339),
		"error", entry.Error,
	)
}

// Record logs the action and publishes it when it succeeded.
func (a *AuditLogger) Record(ctx context.Context, storeID, eventType, target string, success bool, errMsg string) {
	a.Log(ctx, AuditEntry{
		StoreID: storeID,
		Action:  eventType,
		Target:  target,
		Success: success,
		Error:   errMsg,
	})

	if !success || a.publisher == nil {
		return
	}

	evt := events.SellerActionEvent{
		EventType:  eventType,
		StoreID:    storeID,
		OrderNo:    target,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		a.logger.Errorf("failed to marshal seller action event: %v", err)
		return
	}
	if err := a.publisher.Publish(ctx, events.SellerActionsTopic, payload); err != nil {
		a.logger.Info("failed to publish seller action event", "error", err)
	}
}
