// Package jms offers the JMS messaging model (connection, session, producer,
// destination, message) on top of a RabbitMQ broker reached over AMQP 0-9-1.
package jms

import (
	"errors"
)

// AckMode is the session acknowledge mode. Values match the JMS constants.
type AckMode int

const (
	AutoAcknowledge   AckMode = 1
	ClientAcknowledge AckMode = 2
	DupsOkAcknowledge AckMode = 3
)

func (mode AckMode) String() string {
	switch mode {
	case AutoAcknowledge:
		return "AUTO_ACKNOWLEDGE"
	case ClientAcknowledge:
		return "CLIENT_ACKNOWLEDGE"
	case DupsOkAcknowledge:
		return "DUPS_OK_ACKNOWLEDGE"
	}
	return "UNKNOWN"
}

// DeliveryMode is the persistence of a message, as the amqp delivery mode.
type DeliveryMode uint8

const (
	NonPersistent DeliveryMode = 1
	Persistent    DeliveryMode = 2
)

const (
	DefaultPriority     = 4
	DefaultDeliveryMode = Persistent
)

var (
	ErrClosed             = errors.New("jms: resource already closed")
	ErrInvalidDestination = errors.New("jms: invalid destination")
	ErrInvalidAckMode     = errors.New("jms: invalid acknowledge mode")
)

type ConnectionFactory interface {
	CreateConnection() (Connection, error)
}

type Connection interface {
	Start() error
	CreateSession(transacted bool, ackMode AckMode) (Session, error)
	Close() error
}

type Session interface {
	CreateQueue(name string) (Queue, error)
	CreateProducer(dest Destination) (MessageProducer, error)
	CreateTextMessage(text string) (TextMessage, error)
	Commit() error
	Close() error
}

type MessageProducer interface {
	Destination() Destination
	Send(msg Message) error
	Close() error
}

type Destination interface {
	String() string
}

type Queue interface {
	Destination
	QueueName() string
}

type Message interface {
	MessageID() string
	CorrelationID() string
	SetCorrelationID(id string)
	Type() string
	SetType(typ string)
	ReplyTo() string
	SetReplyTo(replyTo string)
	Priority() uint8
	SetPriority(priority uint8)
	DeliveryMode() DeliveryMode
	SetDeliveryMode(mode DeliveryMode)
	Expiration() string
	SetExpiration(expiration string)
	StringProperty(name string) (string, bool)
	SetStringProperty(name, value string)
}

type TextMessage interface {
	Message
	Text() string
	SetText(text string)
}
