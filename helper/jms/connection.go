package jms

import (
	"net"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	DefaultHost        = "localhost"
	DefaultPort        = 5672
	DefaultUsername    = "guest"
	DefaultPassword    = "guest"
	DefaultVirtualHost = "/"

	productName = "jms-sender"
)

// RMQConnectionFactory creates connections to a RabbitMQ broker. Use
// NewRMQConnectionFactory to start from the broker defaults.
type RMQConnectionFactory struct {
	Host           string
	Port           int
	Username       string
	Password       string
	VirtualHost    string
	ConnectionName string

	// DeclareSettings overrides the queue/exchange/bind declaration used when a
	// producer is created, e.g. MakeupSettings(NewQueueSettings().Durable(false)).
	DeclareSettings map[string]bool

	dial dialFunc
}

func NewRMQConnectionFactory() *RMQConnectionFactory {
	return &RMQConnectionFactory{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Username:    DefaultUsername,
		Password:    DefaultPassword,
		VirtualHost: DefaultVirtualHost,
	}
}

// URI returns the amqp url dialed by CreateConnection. Fields are used as
// set; defaults come from NewRMQConnectionFactory only.
func (factory *RMQConnectionFactory) URI() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(factory.Username, factory.Password),
		Host:   net.JoinHostPort(factory.Host, strconv.Itoa(factory.Port)),
		Path:   "/",
	}
	if vhost := factory.VirtualHost; vhost != "" && vhost != DefaultVirtualHost {
		u.Path = "/" + vhost
		u.RawPath = "/" + url.PathEscape(vhost)
	}

	return u.String()
}

func (factory *RMQConnectionFactory) CreateConnection() (Connection, error) {
	dial := factory.dial
	if dial == nil {
		dial = dialAMQP
	}

	properties := amqp.Table{
		"product": productName,
	}
	if factory.ConnectionName != "" {
		properties["connection_name"] = factory.ConnectionName
	}

	logger := log.WithFields(log.Fields{
		"host":  factory.Host,
		"port":  factory.Port,
		"vhost": factory.VirtualHost,
	})
	logger.Debug("Dial amqp broker")

	conn, err := dial(factory.URI(), amqp.Config{
		Properties: properties,
		Locale:     "en_US",
	})
	if err != nil {
		return nil, errors.Wrapf(err, "dial rabbitmq %s:%d failed", factory.Host, factory.Port)
	}
	logger.Debug("Amqp connection established")

	return &rmqConnection{
		conn:     conn,
		settings: factory.DeclareSettings,
	}, nil
}

type rmqConnection struct {
	conn     amqpConnection
	settings map[string]bool
	started  bool
	closed   bool
	sessions []*rmqSession
}

// Start enables delivery on the connection. It has no effect on sending.
func (c *rmqConnection) Start() error {
	if c.closed {
		return errors.WithStack(ErrClosed)
	}
	c.started = true
	return nil
}

func (c *rmqConnection) CreateSession(transacted bool, ackMode AckMode) (Session, error) {
	if c.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	if !transacted && (ackMode < AutoAcknowledge || ackMode > DupsOkAcknowledge) {
		return nil, errors.Wrapf(ErrInvalidAckMode, "ack mode %d", ackMode)
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open amqp channel failed")
	}

	if transacted {
		if err := ch.Tx(); err != nil {
			ch.Close()
			return nil, errors.Wrap(err, "select tx mode on channel failed")
		}
	}

	log.WithFields(log.Fields{
		"transacted": transacted,
		"ack_mode":   ackMode.String(),
	}).Debug("Session created")

	sess := newSession(ch, transacted, ackMode, c.settings)
	c.sessions = append(c.sessions, sess)
	return sess, nil
}

// Close closes the amqp connection, which takes its channels with it.
// Closing twice is a no-op.
func (c *rmqConnection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, sess := range c.sessions {
		sess.markClosed()
	}

	if err := c.conn.Close(); err != nil {
		return errors.Wrap(err, "close amqp connection failed")
	}
	log.Debug("Amqp connection closed")
	return nil
}
