package jms

import (
	"github.com/streadway/amqp"
)

type call struct {
	method string
	args   []interface{}
}

type fakeChannel struct {
	calls      []call
	published  []amqp.Publishing
	declareErr error
	publishErr error
	closeErr   error
}

func (ch *fakeChannel) record(method string, args ...interface{}) {
	ch.calls = append(ch.calls, call{method: method, args: args})
}

func (ch *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	ch.record("ExchangeDeclare", name, kind, durable, autoDelete, internal, noWait)
	return ch.declareErr
}

func (ch *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ch.record("QueueDeclare", name, durable, autoDelete, exclusive, noWait)
	return amqp.Queue{Name: name}, nil
}

func (ch *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	ch.record("QueueBind", name, key, exchange, noWait)
	return nil
}

func (ch *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	ch.record("Publish", exchange, key)
	if ch.publishErr != nil {
		return ch.publishErr
	}
	ch.published = append(ch.published, msg)
	return nil
}

func (ch *fakeChannel) Tx() error {
	ch.record("Tx")
	return nil
}

func (ch *fakeChannel) TxCommit() error {
	ch.record("TxCommit")
	return nil
}

func (ch *fakeChannel) Close() error {
	ch.record("Close")
	return ch.closeErr
}

type fakeConnection struct {
	channel    *fakeChannel
	channelErr error
	closeCount int
}

func (conn *fakeConnection) Channel() (amqpChannel, error) {
	if conn.channelErr != nil {
		return nil, conn.channelErr
	}
	return conn.channel, nil
}

func (conn *fakeConnection) Close() error {
	conn.closeCount++
	return nil
}

func newFakeFactory(conn *fakeConnection, dialErr error) (*RMQConnectionFactory, *[]string) {
	urls := []string{}
	factory := NewRMQConnectionFactory()
	factory.dial = func(url string, config amqp.Config) (amqpConnection, error) {
		urls = append(urls, url)
		if dialErr != nil {
			return nil, dialErr
		}
		return conn, nil
	}
	return factory, &urls
}

func methods(calls []call) []string {
	names := make([]string, 0, len(calls))
	for _, c := range calls {
		names = append(names, c.method)
	}
	return names
}
