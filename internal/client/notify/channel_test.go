package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_ZeroValueIsHidden(t *testing.T) {
	var c Channel
	assert.Equal(t, ErrorNotice{}, c.Notice())
}

func TestChannel_SetAndClear(t *testing.T) {
	c := NewChannel()

	c.SetError("group not found")
	assert.Equal(t, ErrorNotice{Message: "group not found", Visible: true}, c.Notice())

	c.ClearError()
	assert.Equal(t, ErrorNotice{}, c.Notice())
}

func TestChannel_LastWriteWins(t *testing.T) {
	c := NewChannel()

	c.SetError("A")
	c.SetError("B")

	n := c.Notice()
	assert.True(t, n.Visible)
	assert.Equal(t, "B", n.Message)
}

func TestChannel_SubscriberSeesLatestOnly(t *testing.T) {
	c := NewChannel()
	ch, cancel := c.Subscribe()
	defer cancel()

	c.SetError("A")
	c.SetError("B")

	got := <-ch
	assert.Equal(t, "B", got.Message)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued notice %+v", extra)
	default:
	}
}

func TestChannel_CancelClosesAndIsIdempotent(t *testing.T) {
	c := NewChannel()
	ch, cancel := c.Subscribe()

	cancel()
	cancel()

	_, ok := <-ch
	require.False(t, ok)

	c.SetError("after cancel")
	assert.Equal(t, "after cancel", c.Notice().Message)
}

func TestChannel_ConcurrentPublishers(t *testing.T) {
	c := NewChannel()
	_, cancel := c.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.SetError("x")
		}()
	}
	wg.Wait()

	assert.Equal(t, ErrorNotice{Message: "x", Visible: true}, c.Notice())
}
