package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSweeper) Sweep(_ context.Context) (int64, error) {
	f.calls.Add(1)
	return 3, f.err
}

func TestNewSessionSweeper_RechazaExpresionInvalida(t *testing.T) {
	_, err := NewSessionSweeper("cada rato", &fakeSweeper{}, nil)
	require.Error(t, err)
}

func TestNewSessionSweeper_AceptaDescriptores(t *testing.T) {
	for _, spec := range []string{"@every 15m", "@hourly", "*/5 * * * *"} {
		_, err := NewSessionSweeper(spec, &fakeSweeper{}, nil)
		assert.NoError(t, err, spec)
	}
}

func TestRunOnce_LlamaAlSweeper(t *testing.T) {
	f := &fakeSweeper{}
	s, err := NewSessionSweeper("@every 1h", f, nil)
	require.NoError(t, err)

	s.RunOnce()
	assert.Equal(t, int32(1), f.calls.Load())

	f.err = errors.New("db caída")
	assert.NotPanics(t, s.RunOnce)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestStartStop(t *testing.T) {
	s, err := NewSessionSweeper("@every 1h", &fakeSweeper{}, nil)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
