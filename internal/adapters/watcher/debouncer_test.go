package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/adapters/watcher"
)

func TestDebouncer_Add_MultiplePathsCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var calls [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, paths)
		})

		d.Add("/project/src/b.c")
		d.Add("/project/src/a.c")
		d.Add("/project/src/b.c")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/src/a.c", "/project/src/b.c"}, calls[0])
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			defer mu.Unlock()
			callCount++
		})

		d.Add("/project/a.c")
		time.Sleep(60 * time.Millisecond)
		d.Add("/project/b.c")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 0, callCount, "window restarts on every event")
		mu.Unlock()

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var received []string
		d := watcher.NewDebouncer(time.Hour, func(paths []string) {
			received = paths
		})

		d.Flush()
		assert.Nil(t, received, "flushing an empty debouncer does nothing")

		d.Add("/project/main.c")
		d.Flush()
		assert.Equal(t, []string{"/project/main.c"}, received)

		received = nil
		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Nil(t, received, "flushed paths are not delivered again")
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("/project/main.c")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
