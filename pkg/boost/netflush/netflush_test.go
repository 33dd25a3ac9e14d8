package netflush_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/gptboost/pkg/boost/netflush"
)

type fakeRunner struct {
	calls  []string
	runErr error
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return r.runErr
}

func (r *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return "", nil
}

func TestFlushDNS(t *testing.T) {
	runner := &fakeRunner{}
	flusher := netflush.NewFlusher(netflush.Options{Runner: runner})

	require.NoError(t, flusher.FlushDNS(context.Background()))
	assert.Equal(t, []string{"ipconfig /flushdns"}, runner.calls)
}

func TestFlushDNS_CommandFails(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1")}
	flusher := netflush.NewFlusher(netflush.Options{Runner: runner})

	err := flusher.FlushDNS(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush dns cache")
}
