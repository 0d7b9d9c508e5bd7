// AngelaMos | 2026
// service_test.go

package subscription

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/carterperez-dev/tipster-platform/internal/core"
)

// repoStub mimics the storage layer including the unique index on the
// (user_id, tipster_id) pair, which is what the concurrency test leans on.
type repoStub struct {
	mu     sync.Mutex
	byPair map[string]*Subscription
	byID   map[string]*Subscription
}

func newRepoStub() *repoStub {
	return &repoStub{
		byPair: make(map[string]*Subscription),
		byID:   make(map[string]*Subscription),
	}
}

func pairKey(userID, tipsterID string) string {
	return userID + "/" + tipsterID
}

func (r *repoStub) Subscribe(ctx context.Context, sub *Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(sub.UserID, sub.TipsterID)
	if _, exists := r.byPair[key]; exists {
		return fmt.Errorf("subscribe: %w", core.ErrAlreadySubscribed)
	}

	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	r.byPair[key] = &cp
	r.byID[sub.ID] = &cp
	return nil
}

func (r *repoStub) GetByPair(
	ctx context.Context,
	userID, tipsterID string,
) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byPair[pairKey(userID, tipsterID)]
	if !ok {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	cp := *sub
	return &cp, nil
}

func (r *repoStub) GetWithTipster(
	ctx context.Context,
	id string,
) (*SubscriptionWithTipster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	return &SubscriptionWithTipster{
		Subscription:     *sub,
		TipsterEmail:     "tipster@example.com",
		TipsterFirstName: "Tip",
		TipsterLastName:  "Ster",
		TipsterRole:      "TIPSTER",
	}, nil
}

func (r *repoStub) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("update subscription status: %w", core.ErrNotFound)
	}
	sub.Status = status
	sub.UpdatedAt = time.Now()
	cp := *sub
	return &cp, nil
}

func (r *repoStub) ListBySubscriber(
	ctx context.Context,
	userID string,
) ([]SubscriptionWithTipster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []SubscriptionWithTipster
	for _, sub := range r.byPair {
		if sub.UserID == userID {
			out = append(out, SubscriptionWithTipster{Subscription: *sub})
		}
	}
	return out, nil
}

func (r *repoStub) ListByTipster(
	ctx context.Context,
	tipsterID string,
) ([]SubscriptionWithSubscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []SubscriptionWithSubscriber
	for _, sub := range r.byPair {
		if sub.TipsterID == tipsterID {
			out = append(out, SubscriptionWithSubscriber{Subscription: *sub})
		}
	}
	return out, nil
}

func (r *repoStub) CountActive(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, sub := range r.byPair {
		if sub.Status == StatusActive {
			count++
		}
	}
	return count, nil
}

type directoryStub struct {
	known map[string]bool
}

func (d *directoryStub) Exists(ctx context.Context, userID string) (bool, error) {
	return d.known[userID], nil
}

func newService(knownUsers ...string) (*Service, *repoStub) {
	repo := newRepoStub()
	dir := &directoryStub{known: make(map[string]bool)}
	for _, id := range knownUsers {
		dir.known[id] = true
	}
	return NewService(repo, dir), repo
}

func TestSubscribe_CreatesActiveRow(t *testing.T) {
	svc, _ := newService("tipster-b")
	ctx := context.Background()

	resp, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if resp.Status != StatusActive {
		t.Fatalf("status = %q, want %q", resp.Status, StatusActive)
	}
	if resp.Plan != DefaultPlan {
		t.Fatalf("plan = %q, want %q", resp.Plan, DefaultPlan)
	}
	if resp.Tipster == nil {
		t.Fatal("expected tipster summary on subscribe response")
	}

	status, err := svc.GetStatus(ctx, "user-a", "tipster-b")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if status == nil {
		t.Fatal("expected a subscription row")
	}
	if status.UserID != "user-a" || status.TipsterID != "tipster-b" {
		t.Fatalf("pair = (%s, %s), want (user-a, tipster-b)", status.UserID, status.TipsterID)
	}
	if status.Status != StatusActive {
		t.Fatalf("status = %q, want %q", status.Status, StatusActive)
	}
}

func TestSubscribe_SelfSubscription(t *testing.T) {
	svc, _ := newService("user-a")

	_, err := svc.Subscribe(
		context.Background(),
		"user-a",
		SubscribeRequest{TipsterID: "user-a"},
	)
	if !errors.Is(err, core.ErrSelfSubscription) {
		t.Fatalf("err = %v, want ErrSelfSubscription", err)
	}
}

func TestSubscribe_Twice(t *testing.T) {
	svc, _ := newService("tipster-b")
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"}); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}

	_, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"})
	if !errors.Is(err, core.ErrAlreadySubscribed) {
		t.Fatalf("err = %v, want ErrAlreadySubscribed", err)
	}
}

func TestSubscribe_UnknownTipster(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Subscribe(
		context.Background(),
		"user-a",
		SubscribeRequest{TipsterID: "ghost"},
	)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUnsubscribe_MissingPair(t *testing.T) {
	svc, _ := newService("tipster-b")

	_, err := svc.Unsubscribe(context.Background(), "user-a", "tipster-b")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUnsubscribe_CancelsButKeepsRow(t *testing.T) {
	svc, _ := newService("tipster-b")
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	resp, err := svc.Unsubscribe(ctx, "user-a", "tipster-b")
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if resp.Status != StatusCancelled {
		t.Fatalf("status = %q, want %q", resp.Status, StatusCancelled)
	}

	// The row survives cancellation: status reflects CANCELLED, not absence.
	status, err := svc.GetStatus(ctx, "user-a", "tipster-b")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if status == nil {
		t.Fatal("expected the cancelled row to still exist")
	}
	if status.Status != StatusCancelled {
		t.Fatalf("status = %q, want %q", status.Status, StatusCancelled)
	}

	// Repeating the call still succeeds because the row still exists.
	if _, err := svc.Unsubscribe(ctx, "user-a", "tipster-b"); err != nil {
		t.Fatalf("second unsubscribe: %v", err)
	}
}

func TestSubscribe_AfterCancelStillBlocked(t *testing.T) {
	svc, _ := newService("tipster-b")
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := svc.Unsubscribe(ctx, "user-a", "tipster-b"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	// The existence check is status-blind, so a cancelled row still blocks.
	_, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"})
	if !errors.Is(err, core.ErrAlreadySubscribed) {
		t.Fatalf("err = %v, want ErrAlreadySubscribed", err)
	}
}

func TestGetStatus_NoRelationIsNilNotError(t *testing.T) {
	svc, _ := newService("tipster-b")

	status, err := svc.GetStatus(context.Background(), "user-a", "tipster-b")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if status != nil {
		t.Fatalf("status = %+v, want nil", status)
	}
}

func TestSubscribe_ConcurrentPairOnlyOneWins(t *testing.T) {
	svc, repo := newService("tipster-b")
	ctx := context.Background()

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Subscribe(ctx, "user-a", SubscribeRequest{
				TipsterID: "tipster-b",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, core.ErrAlreadySubscribed):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}

	repo.mu.Lock()
	rows := len(repo.byPair)
	repo.mu.Unlock()
	if rows != 1 {
		t.Fatalf("persisted rows = %d, want 1", rows)
	}
}

func TestListSubscriptions_IncludesCancelled(t *testing.T) {
	svc, _ := newService("tipster-b", "tipster-c")
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-b"}); err != nil {
		t.Fatalf("subscribe b: %v", err)
	}
	if _, err := svc.Subscribe(ctx, "user-a", SubscribeRequest{TipsterID: "tipster-c"}); err != nil {
		t.Fatalf("subscribe c: %v", err)
	}
	if _, err := svc.Unsubscribe(ctx, "user-a", "tipster-b"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	subs, err := svc.ListSubscriptions(ctx, "user-a")
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len = %d, want 2 (cancelled rows included)", len(subs))
	}
}
