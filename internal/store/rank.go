package store

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"chromactl/internal/distance"
	"chromactl/internal/domain"
)

// minChunk keeps small collections on a single goroutine.
const minChunk = 1024

// rank scores records against query in parallel chunks and returns the n
// closest, ties broken by id.
func rank(ctx context.Context, records []domain.Record, query []float32, n int, space domain.Space) ([]domain.Match, error) {
	fn, err := distance.For(space)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []domain.Match{}, nil
	}

	chunk := max(minChunk, (len(records)+runtime.GOMAXPROCS(0)-1)/runtime.GOMAXPROCS(0))
	parts := make([][]domain.Match, (len(records)+chunk-1)/chunk)

	g, ctx := errgroup.WithContext(ctx)
	for p := range parts {
		lo := p * chunk
		hi := min(lo+chunk, len(records))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local := make([]domain.Match, 0, hi-lo)
			for _, r := range records[lo:hi] {
				local = append(local, domain.Match{Record: r, Distance: fn(query, r.Embedding)})
			}
			parts[p] = topN(local, n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return topN(slices.Concat(parts...), n), nil
}

func topN(m []domain.Match, n int) []domain.Match {
	slices.SortFunc(m, func(a, b domain.Match) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(m) > n {
		m = m[:n]
	}
	return m
}
