package state

import "context"

// Source produces one collection load.
type Source[T any] func(ctx context.Context) ([]T, error)

// FirstNonEmpty chains sources: the first one that yields a non-empty
// result wins. A source that fails or comes back empty hands over to the
// next. When every source is empty the result is empty; when every
// source fails the first failure is returned.
//
// The gallery uses this to fall back from works' cover photos to the
// flat photo list when no works exist yet.
func FirstNonEmpty[T any](sources ...Source[T]) Source[T] {
	return func(ctx context.Context) ([]T, error) {
		var firstErr error
		failed := 0
		for _, source := range sources {
			items, err := source(ctx)
			if err != nil {
				failed++
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if len(items) > 0 {
				return items, nil
			}
		}
		if failed == len(sources) {
			return nil, firstErr
		}
		return nil, nil
	}
}
