package jms

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type rmqSession struct {
	channel    amqpChannel
	transacted bool
	ackMode    AckMode
	settings   map[string]bool
	declared   map[string]bool
	producers  []*rmqProducer
	closed     bool
}

func newSession(ch amqpChannel, transacted bool, ackMode AckMode, settings map[string]bool) *rmqSession {
	return &rmqSession{
		channel:    ch,
		transacted: transacted,
		ackMode:    ackMode,
		settings:   settings,
		declared:   make(map[string]bool),
	}
}

func (sess *rmqSession) CreateQueue(name string) (Queue, error) {
	if sess.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	if name == "" {
		return nil, errors.Wrap(ErrInvalidDestination, "queue name cannot be empty")
	}

	return newQueueDestination(name), nil
}

func (sess *rmqSession) CreateProducer(dest Destination) (MessageProducer, error) {
	if sess.closed {
		return nil, errors.WithStack(ErrClosed)
	}

	rmqDest, ok := dest.(*RMQDestination)
	if !ok || rmqDest == nil {
		return nil, errors.Wrapf(ErrInvalidDestination, "unsupported destination %v", dest)
	}

	if err := sess.declareDestination(rmqDest); err != nil {
		return nil, err
	}

	producer := &rmqProducer{
		session: sess,
		dest:    rmqDest,
	}
	sess.producers = append(sess.producers, producer)
	return producer, nil
}

// declareDestination declares the exchange and the queue of dest and binds
// them, once per session.
func (sess *rmqSession) declareDestination(dest *RMQDestination) error {
	if sess.declared[dest.name] {
		return nil
	}

	exchangeConfigs := filterBooleanConfigs(defaultExchangeSettings(), exchangeSettingPrefix, sess.settings, false)
	log.WithFields(log.Fields{
		"exchange": dest.exchange,
		"settings": exchangeConfigs,
	}).Debug("Declare exchange")
	if err := sess.channel.ExchangeDeclare(
		dest.exchange,
		queueExchangeType,
		exchangeConfigs[settingDurable],
		exchangeConfigs[settingAutoDelete],
		exchangeConfigs[settingInternal],
		exchangeConfigs[settingNoWait],
		nil,
	); err != nil {
		return errors.Wrapf(err, "declare exchange %s failed", dest.exchange)
	}

	queueConfigs := filterBooleanConfigs(defaultQueueSettings(), queueSettingPrefix, sess.settings, false)
	log.WithFields(log.Fields{
		"queue":    dest.queue,
		"settings": queueConfigs,
	}).Debug("Declare queue")
	if _, err := sess.channel.QueueDeclare(
		dest.queue,
		queueConfigs[settingDurable],
		queueConfigs[settingAutoDelete],
		queueConfigs[settingExclusive],
		queueConfigs[settingNoWait],
		nil,
	); err != nil {
		return errors.Wrapf(err, "declare queue %s failed", dest.queue)
	}

	bindConfigs := filterBooleanConfigs(defaultBindSettings(), bindSettingPrefix, sess.settings, false)
	if err := sess.channel.QueueBind(
		dest.queue,
		dest.routingKey,
		dest.exchange,
		bindConfigs[settingNoWait],
		nil,
	); err != nil {
		return errors.Wrapf(err, "bind queue %s to %s failed", dest.queue, dest.exchange)
	}

	sess.declared[dest.name] = true
	return nil
}

func (sess *rmqSession) CreateTextMessage(text string) (TextMessage, error) {
	if sess.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	return newTextMessage(text), nil
}

func (sess *rmqSession) Commit() error {
	if sess.closed {
		return errors.WithStack(ErrClosed)
	}
	if !sess.transacted {
		return errors.New("jms: commit on a non-transacted session")
	}
	if err := sess.channel.TxCommit(); err != nil {
		return errors.Wrap(err, "commit amqp transaction failed")
	}
	return nil
}

// Close closes the session channel. Uncommitted work of a transacted session
// is discarded by the broker.
func (sess *rmqSession) Close() error {
	if sess.closed {
		return nil
	}
	sess.markClosed()

	if err := sess.channel.Close(); err != nil {
		return errors.Wrap(err, "close amqp channel failed")
	}
	log.Debug("Session closed")
	return nil
}

func (sess *rmqSession) markClosed() {
	sess.closed = true
	for _, producer := range sess.producers {
		producer.closed = true
	}
}
