package mail

import (
	"github.com/rs/zerolog/log"
)

// Dispatcher queues outbound mail and delivers it from a background worker.
// Enqueue never blocks the request path and delivery failures are logged,
// not propagated: the caller's contract is "task submitted", not "email
// delivered". There is no durable outbox and no retry.
type Dispatcher struct {
	mailer Mailer
	queue  chan Message
	done   chan bool
}

// NewDispatcher creates a Dispatcher over the given Mailer.
func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, 64),
		done:   make(chan bool),
	}
}

// Run starts the delivery loop. It drains the queue until Stop is called.
func (d *Dispatcher) Run() {
	log.Info().Msg("Starting background mail dispatcher...")
	for {
		select {
		case <-d.done:
			log.Info().Msg("Stopping background mail dispatcher.")
			return
		case msg := <-d.queue:
			if err := d.mailer.Send(msg); err != nil {
				log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("Failed to deliver email")
			}
		}
	}
}

// Stop halts the delivery loop. Queued messages that were not yet delivered
// are dropped; delivery is best-effort.
func (d *Dispatcher) Stop() {
	d.done <- true
}

// Enqueue submits a message for background delivery. If the queue is full the
// message is dropped rather than blocking the triggering operation.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		log.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("Mail queue full, dropping message")
	}
}
