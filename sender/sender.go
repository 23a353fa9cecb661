// Package sender implements the one-shot command that sends a single JMS
// text message to a RabbitMQ queue.
package sender

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lworkltd/jms-sender/helper/jms"
	"github.com/lworkltd/jms-sender/pkgs/logutil"
	"github.com/lworkltd/jms-sender/service/profile"
	"github.com/lworkltd/jms-sender/service/version"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	AppName = "jms-sender"
	Usage   = "Usage: " + AppName + " <host> <port> <username> <password> <queue> <message>"

	positionalCount = 6
)

// FactoryFunc builds the connection factory for a broker profile.
type FactoryFunc func(broker *profile.Broker) jms.ConnectionFactory

// NewRMQFactory returns a RabbitMQ connection factory for broker.
func NewRMQFactory(broker *profile.Broker) jms.ConnectionFactory {
	factory := jms.NewRMQConnectionFactory()
	factory.Host = broker.Host
	factory.Port = broker.Port
	factory.Username = broker.Username
	factory.Password = broker.Password
	factory.VirtualHost = broker.VirtualHost
	factory.ConnectionName = AppName
	return factory
}

type Sender struct {
	Stdout     io.Writer
	Stderr     io.Writer
	NewFactory FactoryFunc
}

func New(stdout, stderr io.Writer) *Sender {
	return &Sender{
		Stdout:     stdout,
		Stderr:     stderr,
		NewFactory: NewRMQFactory,
	}
}

// Run executes one invocation and returns the process exit code.
func (s *Sender) Run(args []string) int {
	broker := &profile.Broker{}
	message := &profile.Message{}
	logger := &profile.Logger{}
	profile.Before(broker, message, logger)

	flags := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	flags.SetOutput(s.Stderr)
	flags.SetInterspersed(false)
	flags.StringVar(&broker.VirtualHost, "vhost", broker.VirtualHost, "virtual host of the broker")
	flags.StringVar(&logger.Level, "log-level", logger.Level, "diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&logger.Format, "log-format", logger.Format, "diagnostic log format (text, json)")
	showVersion := flags.Bool("version", false, "print the version and exit")
	flags.Usage = func() {
		fmt.Fprintln(s.Stderr, Usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(s.Stderr, "ERROR: %v\n", err)
		flags.Usage()
		return 1
	}

	if *showVersion {
		fmt.Fprintln(s.Stdout, version.String(AppName))
		return 0
	}

	positionals := flags.Args()
	if len(positionals) != positionalCount {
		fmt.Fprintln(s.Stderr, Usage)
		return 1
	}

	port, err := strconv.Atoi(positionals[1])
	if err != nil {
		fmt.Fprintf(s.Stderr, "ERROR: Invalid port %q\n%+v\n", positionals[1], errors.WithStack(err))
		return 1
	}

	broker.Host = positionals[0]
	broker.Port = port
	broker.Username = positionals[2]
	broker.Password = positionals[3]
	message.Queue = positionals[4]
	message.Body = positionals[5]

	logger.AfterParse()
	if err := logutil.InitLoggerWithProfile(logger, AppName, s.Stderr); err != nil {
		fmt.Fprintf(s.Stderr, "ERROR: %v\n", err)
		return 1
	}
	profile.After(broker, message)

	return s.deliver(s.NewFactory(broker), message)
}

// deliver sends message and releases every acquired resource before it
// returns, whatever the outcome.
func (s *Sender) deliver(factory jms.ConnectionFactory, message *profile.Message) int {
	var (
		connection jms.Connection
		session    jms.Session
		producer   jms.MessageProducer
	)
	defer func() {
		s.release(producer, session, connection)
	}()

	err := func() error {
		conn, err := factory.CreateConnection()
		if err != nil {
			return errors.Wrap(err, "create connection")
		}
		connection = conn

		if err := connection.Start(); err != nil {
			return errors.Wrap(err, "start connection")
		}

		sess, err := connection.CreateSession(false, jms.AutoAcknowledge)
		if err != nil {
			return errors.Wrap(err, "create session")
		}
		session = sess

		queue, err := session.CreateQueue(message.Queue)
		if err != nil {
			return errors.Wrapf(err, "create queue %s", message.Queue)
		}

		prod, err := session.CreateProducer(queue)
		if err != nil {
			return errors.Wrap(err, "create producer")
		}
		producer = prod

		msg, err := session.CreateTextMessage(message.Body)
		if err != nil {
			return errors.Wrap(err, "create text message")
		}

		if err := producer.Send(msg); err != nil {
			return errors.Wrap(err, "send message")
		}

		log.WithFields(log.Fields{
			"queue":      message.Queue,
			"message_id": msg.MessageID(),
		}).Debug("Message sent")
		return nil
	}()
	if err != nil {
		fmt.Fprintln(s.Stderr, "ERROR: Failed to send message")
		fmt.Fprintf(s.Stderr, "%+v\n", err)
		return 1
	}

	fmt.Fprintf(s.Stdout, "SUCCESS: Message sent to queue: %s\n", message.Queue)
	fmt.Fprintf(s.Stdout, "Message content: %s\n", message.Body)
	return 0
}

// release closes the handles in the given order, skipping the ones never
// created. Close failures are reported and otherwise ignored.
func (s *Sender) release(closers ...io.Closer) {
	for _, closer := range closers {
		if closer == nil {
			continue
		}
		if err := closer.Close(); err != nil {
			fmt.Fprintf(s.Stderr, "%+v\n", err)
		}
	}
}
