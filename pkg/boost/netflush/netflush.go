// Package netflush resets network-level caches. Resolver state is the
// only cache handled today; it is flushed through ipconfig so the
// behaviour matches what an administrator would do by hand.
package netflush

import (
	"context"
	"fmt"

	"github.com/jamesainslie/gptboost/pkg/boost/execx"
	"github.com/jamesainslie/gptboost/pkg/boost/logging"
)

// Flusher flushes the system DNS resolver cache.
type Flusher struct {
	runner execx.Runner
	logger *logging.Logger
}

// Options configures a Flusher.
type Options struct {
	// Runner executes system commands. Defaults to execx.New().
	Runner execx.Runner

	// Logger is the component logger. Defaults to "netflush".
	Logger *logging.Logger
}

// NewFlusher creates a Flusher from the given options.
func NewFlusher(opts Options) *Flusher {
	runner := opts.Runner
	if runner == nil {
		runner = execx.New()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Get("netflush")
	}

	return &Flusher{runner: runner, logger: logger}
}

// FlushDNS clears the resolver cache via `ipconfig /flushdns`.
func (f *Flusher) FlushDNS(ctx context.Context) error {
	f.logger.Debug("flushing DNS resolver cache")

	if err := f.runner.Run(ctx, "ipconfig", "/flushdns"); err != nil {
		return fmt.Errorf("flush dns cache: %w", err)
	}

	f.logger.Info("DNS resolver cache flushed")
	return nil
}
