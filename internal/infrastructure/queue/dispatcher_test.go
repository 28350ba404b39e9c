package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/api/metrics"
	"github.com/founderflow/founderflow/internal/core/ports"
)

type recordingNotificationService struct {
	mu        sync.Mutex
	processed []ports.Notification
}

func (s *recordingNotificationService) Process(ctx context.Context, n ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, n)
	return nil
}

func (s *recordingNotificationService) snapshot() []ports.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.Notification(nil), s.processed...)
}

func TestDispatcher_ProcessesNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &recordingNotificationService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	enqueuedBefore := testutil.ToFloat64(metrics.NotificationsEnqueuedTotal)
	for i := 0; i < 5; i++ {
		d.Enqueue(ports.Notification{RecipientID: "user_1", TaskID: "task"})
	}
	if got := testutil.ToFloat64(metrics.NotificationsEnqueuedTotal); got != enqueuedBefore+5 {
		t.Fatalf("enqueue counter not incremented: %v -> %v", enqueuedBefore, got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(svc.snapshot()) == 5 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected 5 processed notifications, got %d", len(svc.snapshot()))
}

func TestDispatcher_SameRecipientKeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &recordingNotificationService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	ids := []string{"t1", "t2", "t3", "t4", "t5"}
	for _, id := range ids {
		d.Enqueue(ports.Notification{RecipientID: "user_1", TaskID: id})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := svc.snapshot()
		if len(got) == len(ids) {
			for i, n := range got {
				if n.TaskID != ids[i] {
					t.Fatalf("order violated at %d: %s", i, n.TaskID)
				}
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("notifications not processed in time")
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingNotificationService{}, zerolog.Nop())
	first := d.shardIndex("user_42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user_42") != first {
			t.Fatal("shard index must be deterministic per recipient")
		}
	}
}
