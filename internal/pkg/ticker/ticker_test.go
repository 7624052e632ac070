package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan time.Time) (time.Time, bool) {
	t.Helper()
	select {
	case at, ok := <-ch:
		return at, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
		return time.Time{}, false
	}
}

func TestTickerDeliversToSubscribers(t *testing.T) {
	tk := New(5 * time.Millisecond)
	tk.Start()
	defer tk.Stop()

	_, first, cleanupFirst := tk.Subscribe()
	defer cleanupFirst()
	_, second, cleanupSecond := tk.Subscribe()
	defer cleanupSecond()

	assert.Equal(t, 2, tk.SubscriberCount())

	at, ok := receive(t, first)
	require.True(t, ok)
	assert.False(t, at.IsZero())

	_, ok = receive(t, second)
	require.True(t, ok)
}

func TestTickerCleanup(t *testing.T) {
	tk := New(5 * time.Millisecond)
	tk.Start()
	defer tk.Stop()

	id, ch, cleanup := tk.Subscribe()
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, tk.SubscriberCount())

	cleanup()
	cleanup()
	assert.Equal(t, 0, tk.SubscriberCount())

	// Drain a tick buffered before cleanup, then expect the close
	for range ch {
	}
}

func TestTickerStopClosesSubscribers(t *testing.T) {
	tk := New(time.Hour)
	tk.Start()
	tk.Start()

	_, ch, cleanup := tk.Subscribe()
	tk.Stop()
	tk.Stop()

	_, ok := receive(t, ch)
	assert.False(t, ok)
	assert.Equal(t, 0, tk.SubscriberCount())

	cleanup()

	_, late, _ := tk.Subscribe()
	_, ok = receive(t, late)
	assert.False(t, ok)
}

func TestTickerSlowSubscriberDoesNotBlock(t *testing.T) {
	tk := New(time.Millisecond)
	tk.Start()
	defer tk.Stop()

	_, slow, cleanupSlow := tk.Subscribe()
	defer cleanupSlow()
	_, fast, cleanupFast := tk.Subscribe()
	defer cleanupFast()

	// Never read slow; fast must keep receiving
	for i := 0; i < 5; i++ {
		_, ok := receive(t, fast)
		require.True(t, ok)
	}
	assert.LessOrEqual(t, len(slow), 1)
}
