// Package notify is the client's error channel: one user-facing error notice
// at a time, last write wins.
package notify

import "sync"

// ErrorNotice is what a toast shows.
type ErrorNotice struct {
	Message string
	Visible bool
}

// Channel holds the current notice and fans it out to subscribers.
// The zero value is ready to use.
type Channel struct {
	mu     sync.Mutex
	notice ErrorNotice
	subs   map[int]chan ErrorNotice
	nextID int
}

func NewChannel() *Channel {
	return &Channel{}
}

// SetError replaces the current notice with message and makes it visible.
func (c *Channel) SetError(message string) {
	c.publish(ErrorNotice{Message: message, Visible: true})
}

// ClearError hides and blanks the notice.
func (c *Channel) ClearError() {
	c.publish(ErrorNotice{})
}

// Notice returns the current notice.
func (c *Channel) Notice() ErrorNotice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Subscribe returns a channel that receives every notice change and a
// function that cancels the subscription. A slow reader only ever sees the
// most recent notice; older undelivered ones are dropped.
func (c *Channel) Subscribe() (<-chan ErrorNotice, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subs == nil {
		c.subs = make(map[int]chan ErrorNotice)
	}
	id := c.nextID
	c.nextID++
	ch := make(chan ErrorNotice, 1)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

func (c *Channel) publish(n ErrorNotice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notice = n
	for _, ch := range c.subs {
		// drain the stale value so the send never blocks
		select {
		case <-ch:
		default:
		}
		ch <- n
	}
}
