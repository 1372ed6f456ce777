package queue

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// AMQPQueue implements Queue on a RabbitMQ connection with durable queues.
// Payloads cross the wire as JSON; subscribers receive raw []byte bodies.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Close() {
	if q.ch != nil {
		q.ch.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
}

func (q *AMQPQueue) declare(topic string) error {
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	return err
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	if err := q.declare(topic); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe consumes the topic on a dedicated goroutine. Handlers get the raw
// JSON body; a handler error requeues the delivery up to 3 times.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) (func(), error) {
	if err := q.declare(topic); err != nil {
		return nil, err
	}

	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				if err := handler(d.Body); err != nil {
					log.Println("Failed to process message:", err)
					var retryCount int32
					if d.Headers["x-retry-count"] != nil {
						retryCount, _ = d.Headers["x-retry-count"].(int32)
					}
					if retryCount < 3 {
						d.Nack(false, true) // requeue
						continue
					}
				}
				d.Ack(false)
			}
		}
	}()

	return func() { close(done) }, nil
}

var _ Queue = (*AMQPQueue)(nil)
