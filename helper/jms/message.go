package jms

import (
	"time"
)

const (
	textMessageType   = "TextMessage"
	messageTypeHeader = "JMSMessageType"
	textContentType   = "text/plain"
	textEncoding      = "UTF-8"
)

type textMessage struct {
	text          string
	messageID     string
	correlationID string
	typ           string
	replyTo       string
	priority      uint8
	deliveryMode  DeliveryMode
	expiration    string
	timestamp     time.Time
	properties    map[string]string
}

func newTextMessage(text string) *textMessage {
	return &textMessage{
		text:         text,
		priority:     DefaultPriority,
		deliveryMode: DefaultDeliveryMode,
		properties:   make(map[string]string),
	}
}

func (msg *textMessage) Text() string                      { return msg.text }
func (msg *textMessage) SetText(text string)               { msg.text = text }
func (msg *textMessage) MessageID() string                 { return msg.messageID }
func (msg *textMessage) CorrelationID() string             { return msg.correlationID }
func (msg *textMessage) SetCorrelationID(id string)        { msg.correlationID = id }
func (msg *textMessage) Type() string                      { return msg.typ }
func (msg *textMessage) SetType(typ string)                { msg.typ = typ }
func (msg *textMessage) ReplyTo() string                   { return msg.replyTo }
func (msg *textMessage) SetReplyTo(replyTo string)         { msg.replyTo = replyTo }
func (msg *textMessage) Priority() uint8                   { return msg.priority }
func (msg *textMessage) DeliveryMode() DeliveryMode        { return msg.deliveryMode }
func (msg *textMessage) SetDeliveryMode(mode DeliveryMode) { msg.deliveryMode = mode }
func (msg *textMessage) Expiration() string                { return msg.expiration }
func (msg *textMessage) SetExpiration(expiration string)   { msg.expiration = expiration }

// SetPriority clamps priority to 0-9.
func (msg *textMessage) SetPriority(priority uint8) {
	if priority > 9 {
		priority = 9
	}
	msg.priority = priority
}

func (msg *textMessage) StringProperty(name string) (string, bool) {
	value, exist := msg.properties[name]
	return value, exist
}

func (msg *textMessage) SetStringProperty(name, value string) {
	msg.properties[name] = value
}

// publishOptions maps the message header fields onto the amqp publishing.
func (msg *textMessage) publishOptions() []PublishOption {
	headers := make(map[string]interface{}, len(msg.properties)+1)
	for name, value := range msg.properties {
		headers[name] = value
	}
	headers[messageTypeHeader] = textMessageType

	options := []PublishOption{
		OptionContentType(textContentType),
		OptionContentEncoding(textEncoding),
		OptionDeliveryMode(uint8(msg.deliveryMode)),
		OptionPriority(msg.priority),
		OptionMessageId(msg.messageID),
		OptionTimestamp(msg.timestamp),
		OptionHeaders(headers),
	}
	if msg.correlationID != "" {
		options = append(options, OptionCorrelationId(msg.correlationID))
	}
	if msg.replyTo != "" {
		options = append(options, OptionReplyTo(msg.replyTo))
	}
	if msg.expiration != "" {
		options = append(options, OptionExpiration(msg.expiration))
	}
	if msg.typ != "" {
		options = append(options, OptionType(msg.typ))
	}

	return options
}
