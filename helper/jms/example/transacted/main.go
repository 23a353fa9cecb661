package main

import (
	"fmt"

	"github.com/lworkltd/jms-sender/helper/jms"
)

func main() {
	factory := jms.NewRMQConnectionFactory()
	factory.VirtualHost = "test"
	factory.DeclareSettings = jms.MakeupSettings(
		jms.NewQueueSettings().Durable(true).AutoDelete(false),
	)

	conn, err := factory.CreateConnection()
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	sess, err := conn.CreateSession(true, jms.AutoAcknowledge)
	if err != nil {
		panic(err)
	}
	defer sess.Close()

	queue, err := sess.CreateQueue("orders")
	if err != nil {
		panic(err)
	}
	producer, err := sess.CreateProducer(queue)
	if err != nil {
		panic(err)
	}
	defer producer.Close()

	for i := 0; i < 3; i++ {
		msg, err := sess.CreateTextMessage(fmt.Sprintf(`{"id":%d}`, i))
		if err != nil {
			panic(err)
		}
		msg.SetStringProperty("source", "example")
		if err := producer.Send(msg); err != nil {
			panic(err)
		}
	}

	if err := sess.Commit(); err != nil {
		panic(err)
	}
	fmt.Println("committed 3 messages to", queue)
}
