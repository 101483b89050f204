package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/state"
)

type fakeHealth struct {
	health *api.Health
	err    error
}

func (f *fakeHealth) FetchHealth(context.Context) (*api.Health, error) {
	return f.health, f.err
}

func TestCalculateBackoff(t *testing.T) {
	base := 2 * time.Second
	cases := []struct {
		failures int
		want     time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 16 * time.Second},
		{4, 30 * time.Second},
		{10, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := calculateBackoff(base, tc.failures); got != tc.want {
			t.Errorf("calculateBackoff(%v, %d) = %v, want %v", base, tc.failures, got, tc.want)
		}
	}
}

func TestRefresh_Success(t *testing.T) {
	store := &state.Store{}
	client := &fakeHealth{health: &api.Health{Message: "ok", DatabaseConfigured: true}}

	if !refresh(context.Background(), store, client) {
		t.Fatal("refresh reported failure for a healthy response")
	}

	snap := store.Snapshot()
	if !snap.HasHealth || !snap.Health.DatabaseConfigured {
		t.Fatalf("store snapshot = %+v, want the fetched health", snap)
	}
	if snap.IsOffline() {
		t.Fatal("healthy store reported offline")
	}
}

func TestRefresh_FailureRecordsError(t *testing.T) {
	store := &state.Store{}
	client := &fakeHealth{err: errors.New("connection refused")}

	if refresh(context.Background(), store, client) {
		t.Fatal("refresh reported success for a failed probe")
	}
	refresh(context.Background(), store, client)

	snap := store.Snapshot()
	if snap.LastError == nil {
		t.Fatal("failed refresh left no error in the store")
	}
	if !snap.IsOffline() {
		t.Fatal("two consecutive failures should read as offline")
	}
}
