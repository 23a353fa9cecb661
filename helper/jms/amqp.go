package jms

import (
	"github.com/streadway/amqp"
)

// amqpChannel is the part of *amqp.Channel a session relies on.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Tx() error
	TxCommit() error
	Close() error
}

type amqpConnection interface {
	Channel() (amqpChannel, error)
	Close() error
}

type dialFunc func(url string, config amqp.Config) (amqpConnection, error)

type streadwayConnection struct {
	*amqp.Connection
}

func (conn streadwayConnection) Channel() (amqpChannel, error) {
	ch, err := conn.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string, config amqp.Config) (amqpConnection, error) {
	conn, err := amqp.DialConfig(url, config)
	if err != nil {
		return nil, err
	}
	return streadwayConnection{conn}, nil
}
