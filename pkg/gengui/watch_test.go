package gengui

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/observability"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeDoc(t, "doc.json", `{}`)
	other := filepath.Join(filepath.Dir(path), "other.json")

	var calls atomic.Int32
	seen := make(chan string, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, nil, func(_ context.Context, p string) error {
			calls.Add(1)
			select {
			case seen <- p:
			default:
			}
			return nil
		})
	}()

	// the watcher may not be registered yet, so keep writing until it fires
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(other, []byte(`{}`), 0o644))
		require.NoError(t, os.WriteFile(path, []byte(`{"Label": {}}`), 0o644))
		return calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, <-seen)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_CountsFailedReloads(t *testing.T) {
	path := writeDoc(t, "doc.yaml", "Label: {}\n")
	before := testutil.ToFloat64(observability.Reloads.WithLabelValues(observability.ResultError))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var calls atomic.Int32
	go func() {
		_ = Watch(ctx, path, 10*time.Millisecond, observability.Nop(), func(context.Context, string) error {
			calls.Add(1)
			return errors.New(errors.ErrCodeMalformedInput, "broken")
		})
	}()

	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, []byte("Label: [\n"), 0o644))
		return calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(observability.Reloads.WithLabelValues(observability.ResultError)) > before
	}, time.Second, 10*time.Millisecond)
}

func TestWatch_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "doc.json")
	err := Watch(context.Background(), path, time.Millisecond, nil, func(context.Context, string) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}
