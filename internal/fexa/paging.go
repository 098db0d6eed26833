package fexa

import "context"

// DefaultMaxPages bounds full-collection fetches unless the caller asks for
// more. Callers doing full dumps pass higher bounds (50-100).
const DefaultMaxPages = 10

// Page is one window of a paginated upstream collection. Total is the
// upstream's total-count hint; it may be zero when the upstream does not
// report one, in which case short-page detection terminates the loop.
type Page[T any] struct {
	Items []T
	Total int
}

// PageFunc fetches one page starting at the given offset. The caller owns
// the endpoint and filters; FetchAll only drives the loop.
type PageFunc[T any] func(ctx context.Context, start, limit int) (Page[T], error)

// FetchAll accumulates every page of a collection. The loop continues while
// the last page was full and the accumulated count is still below the
// upstream total (when known), and stops unconditionally after maxPages
// iterations as a circuit-breaker against a misbehaving upstream. A failure
// on any page aborts the whole fetch; partial results are discarded.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], pageSize, maxPages int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	all := make([]T, 0, pageSize)
	offset := 0

	for page := 0; page < maxPages; page++ {
		p, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, p.Items...)

		// A short page is the primary end-of-data signal; the upstream
		// total-count is a secondary guard since it is sometimes absent
		// or unreliable.
		if len(p.Items) < pageSize {
			break
		}
		if p.Total > 0 && len(all) >= p.Total {
			break
		}

		// Offset advances by exactly pageSize regardless of how many items
		// the page actually returned.
		offset += pageSize
	}

	return all, nil
}
