package jms

import "fmt"

const (
	// DurableQueueExchange is the exchange RabbitMQ JMS queue destinations
	// are bound to. The routing key is the queue name.
	DurableQueueExchange = "jms.durable.queues"
	queueExchangeType    = "direct"
)

type RMQDestination struct {
	name       string
	exchange   string
	routingKey string
	queue      string
}

func newQueueDestination(name string) *RMQDestination {
	return &RMQDestination{
		name:       name,
		exchange:   DurableQueueExchange,
		routingKey: name,
		queue:      name,
	}
}

func (dest *RMQDestination) QueueName() string {
	return dest.name
}

func (dest *RMQDestination) Exchange() string {
	return dest.exchange
}

func (dest *RMQDestination) RoutingKey() string {
	return dest.routingKey
}

func (dest *RMQDestination) AmqpQueueName() string {
	return dest.queue
}

func (dest *RMQDestination) String() string {
	return fmt.Sprintf("RMQDestination{queue=%s, exchange=%s, routingKey=%s}",
		dest.name, dest.exchange, dest.routingKey)
}
