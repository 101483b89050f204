package state

import (
	"context"
	"errors"
	"testing"

	"github.com/lcamargo/darkroom/internal/api"
)

func TestFirstNonEmpty_PrimaryWins(t *testing.T) {
	fallbackCalled := false
	source := FirstNonEmpty(
		func(ctx context.Context) ([]api.Photo, error) {
			return []api.Photo{{ID: 1}}, nil
		},
		func(ctx context.Context) ([]api.Photo, error) {
			fallbackCalled = true
			return []api.Photo{{ID: 2}}, nil
		},
	)

	items, err := source(context.Background())
	if err != nil {
		t.Fatalf("source returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("items = %#v, want primary result", items)
	}
	if fallbackCalled {
		t.Fatal("fallback consulted although primary was non-empty")
	}
}

func TestFirstNonEmpty_FallsBackOnEmptyAndError(t *testing.T) {
	cases := []struct {
		name    string
		primary Source[api.Photo]
	}{
		{"empty primary", func(ctx context.Context) ([]api.Photo, error) { return nil, nil }},
		{"failing primary", func(ctx context.Context) ([]api.Photo, error) { return nil, errors.New("404") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := FirstNonEmpty(
				tc.primary,
				func(ctx context.Context) ([]api.Photo, error) {
					return []api.Photo{{ID: 9}}, nil
				},
			)
			items, err := source(context.Background())
			if err != nil {
				t.Fatalf("source returned error: %v", err)
			}
			if len(items) != 1 || items[0].ID != 9 {
				t.Fatalf("items = %#v, want fallback result", items)
			}
		})
	}
}

func TestFirstNonEmpty_AllEmptyAndAllFailed(t *testing.T) {
	empty := func(ctx context.Context) ([]api.Photo, error) { return nil, nil }
	items, err := FirstNonEmpty(empty, empty)(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("all-empty = (%v, %v), want empty without error", items, err)
	}

	first := errors.New("first down")
	fail1 := func(ctx context.Context) ([]api.Photo, error) { return nil, first }
	fail2 := func(ctx context.Context) ([]api.Photo, error) { return nil, errors.New("second down") }
	_, err = FirstNonEmpty(fail1, fail2)(context.Background())
	if !errors.Is(err, first) {
		t.Fatalf("err = %v, want the first failure", err)
	}
}
