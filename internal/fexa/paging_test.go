package fexa_test

import (
	"context"
	"testing"

	"fexa-gateway/internal/fexa"
	"fexa-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pages builds a PageFunc serving the given page sizes with a fixed total.
func pages(sizes []int, total int, calls *int, offsets *[]int) fexa.PageFunc[int] {
	return func(ctx context.Context, start, limit int) (fexa.Page[int], error) {
		*offsets = append(*offsets, start)
		page := *calls
		*calls++
		if page >= len(sizes) {
			return fexa.Page[int]{Total: total}, nil
		}
		items := make([]int, sizes[page])
		return fexa.Page[int]{Items: items, Total: total}, nil
	}
}

func TestFetchAll_StopsOnShortPage(t *testing.T) {
	calls := 0
	var offsets []int

	got, err := fexa.FetchAll(context.Background(), pages([]int{100, 100, 37}, 237, &calls, &offsets), 100, 10)
	require.NoError(t, err)

	assert.Len(t, got, 237)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{0, 100, 200}, offsets)
}

func TestFetchAll_StopsAtMaxPages(t *testing.T) {
	calls := 0
	var offsets []int
	full := []int{100, 100, 100, 100, 100, 100, 100}

	got, err := fexa.FetchAll(context.Background(), pages(full, 0, &calls, &offsets), 100, 5)
	require.NoError(t, err)

	assert.Len(t, got, 500)
	assert.Equal(t, 5, calls)
}

func TestFetchAll_StopsWhenTotalReached(t *testing.T) {
	calls := 0
	var offsets []int

	got, err := fexa.FetchAll(context.Background(), pages([]int{100, 100, 100}, 200, &calls, &offsets), 100, 10)
	require.NoError(t, err)

	assert.Len(t, got, 200)
	assert.Equal(t, 2, calls)
}

func TestFetchAll_ErrorDiscardsPartialResults(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, start, limit int) (fexa.Page[int], error) {
		calls++
		if calls == 2 {
			return fexa.Page[int]{}, errors.Server("boom", 500, "", "")
		}
		return fexa.Page[int]{Items: make([]int, limit)}, nil
	}

	got, err := fexa.FetchAll(context.Background(), fetch, 100, 10)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, errors.KindServer, errors.KindOf(err))
}

func TestFetchAll_DefaultsPageSizeAndMaxPages(t *testing.T) {
	var limits []int
	calls := 0
	fetch := func(ctx context.Context, start, limit int) (fexa.Page[int], error) {
		limits = append(limits, limit)
		calls++
		return fexa.Page[int]{Items: make([]int, limit)}, nil
	}

	got, err := fexa.FetchAll(context.Background(), fetch, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 100, limits[0])
	assert.Equal(t, fexa.DefaultMaxPages, calls)
	assert.Len(t, got, 100*fexa.DefaultMaxPages)
}

func TestFetchAll_EmptyFirstPage(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, start, limit int) (fexa.Page[int], error) {
		calls++
		return fexa.Page[int]{}, nil
	}

	got, err := fexa.FetchAll(context.Background(), fetch, 100, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, calls)
}
