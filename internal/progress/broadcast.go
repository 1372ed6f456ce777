package progress

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"github.com/ziljnk/content-generation/internal/queue"
)

// Broadcaster is the asynchronous Sink binding. Every event goes onto the
// in-process bus (which feeds connected event-stream clients) and, when a
// broker is configured, onto a fanout exchange so external consumers can
// listen too. Delivery is best effort: no acks, no replay.
type Broadcaster struct {
	bus  queue.Queue
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewBroadcaster(bus queue.Queue, amqpURL string) *Broadcaster {
	b := &Broadcaster{bus: bus}
	if amqpURL == "" {
		return b
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		log.Println("⚠️ AMQP unavailable, progress broadcast stays local:", err)
		return b
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Println("⚠️ Failed to open AMQP channel:", err)
		conn.Close()
		return b
	}

	if err := ch.ExchangeDeclare(Channel, "fanout", false, false, false, false, nil); err != nil {
		log.Println("⚠️ Failed to declare broadcast exchange:", err)
		ch.Close()
		conn.Close()
		return b
	}

	b.conn = conn
	b.ch = ch
	return b
}

func (b *Broadcaster) Send(e Event) {
	if e.Timestamp == 0 {
		e = NewEvent(e.Step, e.Message, e.Status)
	}

	if b.bus != nil {
		// No subscribers is fine; nobody may be watching.
		_ = b.bus.Publish(Channel, e)
	}

	if b.ch == nil {
		return
	}
	body, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := b.ch.Publish(Channel, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}); err != nil {
		log.Println("⚠️ Failed to broadcast progress event:", err)
	}
}

func (b *Broadcaster) Close() {
	if b.ch != nil {
		b.ch.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}

var _ Sink = (*Broadcaster)(nil)
