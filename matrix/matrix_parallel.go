package matrix

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MulParallel returns m * other, computing rows concurrently.
// The result is the same as [Matrix.Mul].
// It stops at the first error or when ctx is done.
func (m *Matrix[T]) MulParallel(ctx context.Context, other *Matrix[T]) (*Matrix[T], error) {
	if err := m.checkMulShape(other); err != nil {
		return nil, err
	}

	mOut, err := NewZero[T](m.rows, other.cols, m.modulus, WithEngine(m.engine))
	if err != nil {
		return nil, err
	}

	workSize := min(runtime.GOMAXPROCS(0), m.rows)
	g, ctx := errgroup.WithContext(ctx)

	rowChan := make(chan int)
	g.Go(func() error {
		defer close(rowChan)
		for i := 0; i < m.rows; i++ {
			select {
			case rowChan <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workSize; w++ {
		g.Go(func() error {
			for i := range rowChan {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := m.mulRowAssign(other, i, mOut); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mOut, nil
}
