package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cagesync/internal/adapters/watcher"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) callback(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func TestDebouncer_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/scene/retopo.yaml")
		d.Add("/scene/reference.yaml")
		d.Add("/scene/retopo.yaml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := rec.snapshot()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/scene/reference.yaml", "/scene/retopo.yaml"}, batches[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Add("/scene/retopo.yaml")
		time.Sleep(50 * time.Millisecond)
		d.Add("/scene/reference.yaml")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, rec.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.callback)

		d.Flush()
		assert.Empty(t, rec.snapshot())

		d.Add("/scene/retopo.yaml")
		d.Flush()
		require.Len(t, rec.snapshot(), 1)

		// The stopped timer must not deliver the batch again.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		require.Len(t, rec.snapshot(), 1)

		d.Add("/scene/reference.yaml")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := rec.snapshot()
		require.Len(t, batches, 2)
		assert.Equal(t, []string{"/scene/reference.yaml"}, batches[1])
	})
}

func TestDebouncer_FlushAfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.callback)

		d.Add("/scene/retopo.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Len(t, rec.snapshot(), 1)

		d.Flush()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/scene/retopo.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/scene/retopo.yaml")
		d.Flush()
	})
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.callback)

		d.Add("/scene/retopo.yaml")
		d.Stop()

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		d.Flush()
		assert.Empty(t, rec.snapshot())
	})
}
