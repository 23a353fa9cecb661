package jms

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var now = time.Now

type rmqProducer struct {
	session *rmqSession
	dest    *RMQDestination
	closed  bool
}

func (producer *rmqProducer) Destination() Destination {
	return producer.dest
}

// Send publishes msg to the producer destination. The message id and
// timestamp are assigned on every send.
func (producer *rmqProducer) Send(msg Message) error {
	if producer.closed {
		return errors.WithStack(ErrClosed)
	}

	text, ok := msg.(*textMessage)
	if !ok || text == nil {
		return errors.Errorf("jms: unsupported message %T", msg)
	}

	text.messageID = newMessageID()
	text.timestamp = now().UTC()

	publishing := makePublishing([]byte(text.text), text.publishOptions()...)
	log.WithFields(log.Fields{
		"send_to":        producer.dest.routingKey,
		"exchange":       producer.dest.exchange,
		"message_id":     publishing.MessageId,
		"content_type":   publishing.ContentType,
		"delivery_mode":  publishing.DeliveryMode,
		"timestamp":      publishing.Timestamp,
		"correlation_id": publishing.CorrelationId,
	}).Debug("Publish amqp content")

	if err := producer.session.channel.Publish(
		producer.dest.exchange,
		producer.dest.routingKey,
		false, false,
		*publishing,
	); err != nil {
		return errors.Wrapf(err, "publish to %s failed", producer.dest.QueueName())
	}

	if producer.session.transacted {
		log.WithField("message_id", text.messageID).Debug("Message pending until commit")
	}
	return nil
}

func (producer *rmqProducer) Close() error {
	producer.closed = true
	return nil
}

func newMessageID() string {
	return "ID:" + uuid.New().String()
}

type PublishOption func(*amqp.Publishing)

func makePublishing(body []byte, options ...PublishOption) *amqp.Publishing {
	publishing := &amqp.Publishing{
		Body: body,
	}
	for _, option := range options {
		option(publishing)
	}
	return publishing
}

func OptionContentType(contentType string) PublishOption {
	return func(args *amqp.Publishing) {
		args.ContentType = contentType
	}
}

func OptionContentEncoding(contentEncoding string) PublishOption {
	return func(args *amqp.Publishing) {
		args.ContentEncoding = contentEncoding
	}
}

func OptionDeliveryMode(deliveryMode uint8) PublishOption {
	return func(args *amqp.Publishing) {
		args.DeliveryMode = deliveryMode
	}
}

func OptionHeaders(headers amqp.Table) PublishOption {
	return func(args *amqp.Publishing) {
		args.Headers = headers
	}
}

func OptionPriority(priority uint8) PublishOption {
	return func(args *amqp.Publishing) {
		args.Priority = priority
	}
}

func OptionCorrelationId(correlationId string) PublishOption {
	return func(args *amqp.Publishing) {
		args.CorrelationId = correlationId
	}
}

func OptionReplyTo(replyTo string) PublishOption {
	return func(args *amqp.Publishing) {
		args.ReplyTo = replyTo
	}
}

// OptionExpiration sets the per-message TTL in milliseconds.
func OptionExpiration(expiration string) PublishOption {
	return func(args *amqp.Publishing) {
		args.Expiration = expiration
	}
}

func OptionMessageId(messageId string) PublishOption {
	return func(args *amqp.Publishing) {
		args.MessageId = messageId
	}
}

func OptionTimestamp(timestamp time.Time) PublishOption {
	return func(args *amqp.Publishing) {
		args.Timestamp = timestamp
	}
}

func OptionType(typ string) PublishOption {
	return func(args *amqp.Publishing) {
		args.Type = typ
	}
}
