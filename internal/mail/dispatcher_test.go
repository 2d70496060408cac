package mail

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (c *captureMailer) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return c.err
}

func (c *captureMailer) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestDispatcherDelivers(t *testing.T) {
	mailer := &captureMailer{}
	d := NewDispatcher(mailer)
	go d.Run()
	defer d.Stop()

	d.Enqueue(Message{To: "alice@example.com", Subject: "hi", HTML: "<p>hi</p>"})
	d.Enqueue(Message{To: "bob@example.com", Subject: "yo", HTML: "<p>yo</p>"})

	require.Eventually(t, func() bool { return mailer.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "alice@example.com", mailer.sent[0].To)
}

// A failing Send must not surface anywhere; the loop keeps draining.
func TestDispatcherSwallowsDeliveryFailure(t *testing.T) {
	mailer := &captureMailer{err: errors.New("smtp down")}
	d := NewDispatcher(mailer)
	go d.Run()
	defer d.Stop()

	d.Enqueue(Message{To: "alice@example.com", Subject: "hi"})
	d.Enqueue(Message{To: "bob@example.com", Subject: "yo"})

	require.Eventually(t, func() bool { return mailer.count() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestEnqueueNeverBlocks(t *testing.T) {
	// No worker running: fill the queue past capacity and make sure the
	// caller is not blocked.
	d := NewDispatcher(&captureMailer{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			d.Enqueue(Message{To: "alice@example.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
