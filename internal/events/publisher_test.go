package events

import (
	"context"
	"testing"
)

func TestPublishRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &NATSPublisher{}
	if err := p.Publish(ctx, SellerActionsTopic, []byte(`{}`)); err == nil {
		t.Error("Publish with a cancelled context should fail")
	}
}
