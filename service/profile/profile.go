package profile

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Profile is a configuration item. BeforeParse sets defaults before the
// command line is parsed, AfterParse checks and normalizes the result.
type Profile interface {
	BeforeParse()
	AfterParse()
}

// Broker holds the RabbitMQ connection settings.
type Broker struct {
	Host        string
	Port        int
	Username    string
	Password    string
	VirtualHost string
}

func (broker *Broker) BeforeParse() {
	broker.VirtualHost = "/"
}

func (broker *Broker) AfterParse() {
	if broker.VirtualHost == "" {
		broker.VirtualHost = "/"
	}
	if broker.Username == "" {
		logrus.WithFields(logrus.Fields{
			"profile": "Broker",
		}).Warn("Username is empty")
	}
}

// Message is the message to send.
type Message struct {
	Queue string
	Body  string
}

func (message *Message) BeforeParse() {}
func (message *Message) AfterParse()  {}

// Logger holds the logging settings.
type Logger struct {
	Format     string
	Level      string
	TimeFormat string
}

func (logger *Logger) BeforeParse() {
	logger.Format = "text"
	logger.Level = "warn"
}

func (logger *Logger) AfterParse() {
	logger.Format = strings.ToLower(strings.TrimSpace(logger.Format))
	logger.Level = strings.ToLower(strings.TrimSpace(logger.Level))
}

// Before calls BeforeParse on each profile in order.
func Before(profiles ...Profile) {
	for _, p := range profiles {
		p.BeforeParse()
	}
}

// After calls AfterParse on each profile in order.
func After(profiles ...Profile) {
	for _, p := range profiles {
		p.AfterParse()
	}
}
