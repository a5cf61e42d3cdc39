// nolint: revive
package utils

import (
	// 外部依赖
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalContext returns a context cancelled on SIGINT/SIGTERM.
func SetupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
		<-ch
		os.Exit(1) // second signal: exit hard
	}()
	return ctx
}

// FilterSlice maps and filters in one pass.
func FilterSlice[T any, R any](in []T, fn func(T) (R, bool)) []R {
	out := make([]R, 0, len(in))
	for _, item := range in {
		if r, ok := fn(item); ok {
			out = append(out, r)
		}
	}
	return out
}
