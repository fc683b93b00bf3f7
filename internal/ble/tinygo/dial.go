package tinygo

import (
	"context"
)

// dial runs connect in a goroutine and waits for it or for ctx. Once ctx wins,
// whatever connect later returns is handed to release, so a connection that
// completes after the caller gave up is never left open.
func dial[T any](ctx context.Context, connect func() (T, error), release func(T)) (T, error) {
	type result struct {
		conn T
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		conn, err := connect()
		resultCh <- result{conn: conn, err: err}
	}()

	select {
	case r := <-resultCh:
		return r.conn, r.err
	case <-ctx.Done():
		go func() {
			if r := <-resultCh; r.err == nil {
				release(r.conn)
			}
		}()
		var zero T
		return zero, ctx.Err()
	}
}
