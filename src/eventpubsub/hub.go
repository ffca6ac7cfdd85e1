package eventpubsub

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

// Publish fans the event out to the topic's subscribers. An uninitialized
// bus or a topic with no subscribers makes this a no-op, so calculation
// code can emit unconditionally.
func Publish(publisherName string, topic string, event interface{}) {
	if bus == nil {
		return
	}

	log.Debugf("[%v] Published to topic %s", publisherName, topic)

	bus.Publish(topic, event)
}

func PublishError(publisherName string, err error) {
	log.Error(err)

	Publish(publisherName, Error, err)
}

func Subscribe(subscriberName string, topic string, callbackFn interface{}) error {
	if bus == nil {
		return fmt.Errorf("Subscribe: bus not initialized")
	}

	if err := bus.SubscribeAsync(topic, callbackFn, false); err != nil {
		return fmt.Errorf("Subscribe: topic %s: %w", topic, err)
	}

	log.Infof("[%v] Subscribed to topic %s", subscriberName, topic)
	return nil
}

// Flush blocks until every in-flight async delivery has been handled.
func Flush() {
	if bus != nil {
		bus.WaitAsync()
	}
}
