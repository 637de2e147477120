// Package queue holds the notification transports.
package queue

// Message is one event received from a transport subscription.
type Message struct {
	Topic string
	Body  []byte

	ack    func() error
	reject func() error
}

// NewMessage builds a Message with explicit settlement callbacks. Nil
// callbacks are treated as no-ops.
func NewMessage(topic string, body []byte, ack, reject func() error) Message {
	return Message{Topic: topic, Body: body, ack: ack, reject: reject}
}

// Ack confirms the message was processed.
func (m Message) Ack() error {
	if m.ack == nil {
		return nil
	}
	return m.ack()
}

// Reject discards the message without requeueing it.
func (m Message) Reject() error {
	if m.reject == nil {
		return nil
	}
	return m.reject()
}
