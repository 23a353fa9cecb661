package jms

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/streadway/amqp"
)

func openSession(t *testing.T, ch *fakeChannel, settings map[string]bool) Session {
	t.Helper()
	factory, _ := newFakeFactory(&fakeConnection{channel: ch}, nil)
	factory.DeclareSettings = settings
	conn, err := factory.CreateConnection()
	if err != nil {
		t.Fatalf("CreateConnection() error = %v", err)
	}
	sess, err := conn.CreateSession(false, AutoAcknowledge)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return sess
}

func TestSession_CreateQueue(t *testing.T) {
	sess := openSession(t, &fakeChannel{}, nil)

	queue, err := sess.CreateQueue("orders")
	if err != nil {
		t.Fatalf("CreateQueue() error = %v", err)
	}
	if queue.QueueName() != "orders" {
		t.Errorf("QueueName() = %v, want orders", queue.QueueName())
	}
	dest := queue.(*RMQDestination)
	if dest.Exchange() != DurableQueueExchange || dest.RoutingKey() != "orders" || dest.AmqpQueueName() != "orders" {
		t.Errorf("destination = %v", dest)
	}

	if _, err := sess.CreateQueue(""); pkgerrors.Cause(err) != ErrInvalidDestination {
		t.Errorf("CreateQueue(\"\") error = %v, want %v", err, ErrInvalidDestination)
	}
}

func TestSession_CreateProducerDeclares(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]bool
		want     []call
	}{
		{
			name: "jms defaults",
			want: []call{
				{"ExchangeDeclare", []interface{}{DurableQueueExchange, "direct", true, false, false, false}},
				{"QueueDeclare", []interface{}{"orders", true, false, false, false}},
				{"QueueBind", []interface{}{"orders", "orders", DurableQueueExchange, false}},
			},
		},
		{
			name: "overridden",
			settings: MakeupSettings(
				NewQueueSettings().Durable(false).AutoDelete(true).Exclusive(true),
				NewExchangeSettings().AutoDelete(true),
				NewBindSettings().NoWait(true),
			),
			want: []call{
				{"ExchangeDeclare", []interface{}{DurableQueueExchange, "direct", true, true, false, false}},
				{"QueueDeclare", []interface{}{"orders", false, true, true, false}},
				{"QueueBind", []interface{}{"orders", "orders", DurableQueueExchange, true}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := &fakeChannel{}
			sess := openSession(t, ch, tt.settings)
			queue, _ := sess.CreateQueue("orders")
			if _, err := sess.CreateProducer(queue); err != nil {
				t.Fatalf("CreateProducer() error = %v", err)
			}
			// a second producer on the same queue does not declare again
			if _, err := sess.CreateProducer(queue); err != nil {
				t.Fatalf("CreateProducer() error = %v", err)
			}
			if !reflect.DeepEqual(ch.calls, tt.want) {
				t.Errorf("channel calls = %v, want %v", ch.calls, tt.want)
			}
		})
	}
}

func TestSession_CreateProducerFailures(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	sess := openSession(t, ch, nil)

	if _, err := sess.CreateProducer(nil); pkgerrors.Cause(err) != ErrInvalidDestination {
		t.Errorf("CreateProducer(nil) error = %v, want %v", err, ErrInvalidDestination)
	}

	queue, _ := sess.CreateQueue("orders")
	_, err := sess.CreateProducer(queue)
	if err == nil || !strings.Contains(err.Error(), "access refused") {
		t.Errorf("CreateProducer() error = %v", err)
	}
}

func TestProducer_Send(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	ch := &fakeChannel{}
	sess := openSession(t, ch, nil)
	queue, _ := sess.CreateQueue("orders")
	producer, _ := sess.CreateProducer(queue)
	msg, _ := sess.CreateTextMessage(`{"id":1}`)
	msg.SetCorrelationID("cid-1")
	msg.SetStringProperty("source", "integration-test")

	if err := producer.Send(msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(ch.published) != 1 {
		t.Fatalf("published = %d, want 1", len(ch.published))
	}
	last := ch.calls[len(ch.calls)-1]
	if !reflect.DeepEqual(last, call{"Publish", []interface{}{DurableQueueExchange, "orders"}}) {
		t.Errorf("publish call = %v", last)
	}

	if !strings.HasPrefix(msg.MessageID(), "ID:") {
		t.Errorf("MessageID() = %v, want ID: prefix", msg.MessageID())
	}
	want := amqp.Publishing{
		Headers: amqp.Table{
			"source":          "integration-test",
			messageTypeHeader: textMessageType,
		},
		ContentType:     "text/plain",
		ContentEncoding: "UTF-8",
		DeliveryMode:    uint8(Persistent),
		Priority:        DefaultPriority,
		CorrelationId:   "cid-1",
		MessageId:       msg.MessageID(),
		Timestamp:       fixed,
		Body:            []byte(`{"id":1}`),
	}
	if got := ch.published[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("publishing = %+v, want %+v", got, want)
	}

	// every send gets a fresh id
	firstID := msg.MessageID()
	if err := producer.Send(msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.MessageID() == firstID {
		t.Errorf("MessageID() reused %v", firstID)
	}
}

func TestProducer_SendFailures(t *testing.T) {
	publishErr := errors.New("channel closed by broker")
	ch := &fakeChannel{publishErr: publishErr}
	sess := openSession(t, ch, nil)
	queue, _ := sess.CreateQueue("orders")
	producer, _ := sess.CreateProducer(queue)
	msg, _ := sess.CreateTextMessage("hi")

	if err := producer.Send(msg); pkgerrors.Cause(err) != publishErr {
		t.Errorf("Send() error = %v, want %v", err, publishErr)
	}

	if err := producer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := producer.Send(msg); pkgerrors.Cause(err) != ErrClosed {
		t.Errorf("Send() after close error = %v, want %v", err, ErrClosed)
	}
}

func TestSession_Close(t *testing.T) {
	ch := &fakeChannel{}
	sess := openSession(t, ch, nil)
	queue, _ := sess.CreateQueue("orders")
	producer, _ := sess.CreateProducer(queue)
	msg, _ := sess.CreateTextMessage("hi")

	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	closes := 0
	for _, c := range ch.calls {
		if c.method == "Close" {
			closes++
		}
	}
	if closes != 1 {
		t.Errorf("channel close count = %d, want 1", closes)
	}

	if err := producer.Send(msg); pkgerrors.Cause(err) != ErrClosed {
		t.Errorf("Send() after session close error = %v, want %v", err, ErrClosed)
	}
	if _, err := sess.CreateQueue("orders"); pkgerrors.Cause(err) != ErrClosed {
		t.Errorf("CreateQueue() after close error = %v, want %v", err, ErrClosed)
	}
}

func TestSession_Commit(t *testing.T) {
	sess := openSession(t, &fakeChannel{}, nil)
	if err := sess.Commit(); err == nil {
		t.Error("Commit() on non-transacted session expect error")
	}

	ch := &fakeChannel{}
	factory, _ := newFakeFactory(&fakeConnection{channel: ch}, nil)
	conn, _ := factory.CreateConnection()
	txSess, err := conn.CreateSession(true, AutoAcknowledge)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if err := txSess.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if got, want := methods(ch.calls), []string{"Tx", "TxCommit"}; !reflect.DeepEqual(got, want) {
		t.Errorf("channel calls = %v, want %v", got, want)
	}
}

func TestMakePublishing(t *testing.T) {
	now := time.Now()
	type args struct {
		body    []byte
		options []PublishOption
	}
	tests := []struct {
		name string
		args args
		want *amqp.Publishing
	}{
		{
			name: "message id",
			args: args{
				[]byte("a"),
				[]PublishOption{
					OptionMessageId("ID:abc123"),
					OptionTimestamp(now),
				},
			},
			want: &amqp.Publishing{
				MessageId: "ID:abc123",
				Timestamp: now,
				Body:      []byte("a"),
			},
		},
		{
			name: "content-type",
			args: args{
				nil,
				[]PublishOption{
					OptionContentType("type1"),
					OptionReplyTo("reply"),
					OptionExpiration("60000"),
					OptionType("order"),
				},
			},
			want: &amqp.Publishing{
				ContentType: "type1",
				ReplyTo:     "reply",
				Expiration:  "60000",
				Type:        "order",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := makePublishing(tt.args.body, tt.args.options...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("makePublishing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextMessage_SetPriority(t *testing.T) {
	msg := newTextMessage("x")
	if msg.Priority() != DefaultPriority {
		t.Errorf("Priority() = %d, want %d", msg.Priority(), DefaultPriority)
	}
	msg.SetPriority(12)
	if msg.Priority() != 9 {
		t.Errorf("Priority() = %d, want 9", msg.Priority())
	}
}
