package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrigger_CoalescesToLastWrite(t *testing.T) {
	d := New(30 * time.Millisecond)

	var got atomic.Int64
	for i := int64(1); i <= 5; i++ {
		v := i
		d.Trigger(func() { got.Store(v) })
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return got.Load() == 5 }, time.Second, 5*time.Millisecond)
	// No earlier trigger may fire afterwards.
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int64(5), got.Load())
}

func TestCancel_DropsPendingInvocation(t *testing.T) {
	d := New(20 * time.Millisecond)

	var fired atomic.Bool
	d.Trigger(func() { fired.Store(true) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	require.False(t, fired.Load())
}

func TestFlush_RunsImmediately(t *testing.T) {
	d := New(time.Hour)

	var fired atomic.Bool
	d.Trigger(func() { fired.Store(true) })
	d.Flush()

	require.True(t, fired.Load())
}

func TestNew_DefaultsQuietPeriod(t *testing.T) {
	d := New(0)
	require.Equal(t, DefaultQuiet, d.quiet)
}
