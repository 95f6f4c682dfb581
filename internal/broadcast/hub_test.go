// internal/broadcast/hub_test.go
package broadcast

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func drain(sub *Subscriber) []map[string]interface{} {
	var msgs []map[string]interface{}
	for {
		select {
		case msg := <-sub.OutChan:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestPublishReachesOnlyRoomSubscribers(t *testing.T) {
	hub := NewHub()
	in := NewSubscriber(testLogger())
	out := NewSubscriber(testLogger())

	hub.Subscribe("ABC123", in)
	hub.Subscribe("ZZZ999", out)

	hub.Publish("ABC123", map[string]interface{}{"type": "ping"})

	if got := drain(in); len(got) != 1 {
		t.Fatalf("subscriber should get exactly one message, got %d", len(got))
	}
	if got := drain(out); len(got) != 0 {
		t.Fatalf("other room should get nothing, got %d", len(got))
	}
}

func TestPublishOrderPreservedPerSubscriber(t *testing.T) {
	hub := NewHub()
	sub := NewSubscriber(testLogger())
	hub.Subscribe("ABC123", sub)

	hub.Publish("ABC123", map[string]interface{}{"type": "first"})
	hub.Publish("ABC123", map[string]interface{}{"type": "second"})

	msgs := drain(sub)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0]["type"] != "first" || msgs[1]["type"] != "second" {
		t.Fatalf("delivery order broken: %v then %v", msgs[0]["type"], msgs[1]["type"])
	}
}

func TestUnsubscribeAllStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := NewSubscriber(testLogger())
	hub.Subscribe("ABC123", sub)
	hub.Subscribe("ZZZ999", sub)

	hub.UnsubscribeAll(sub)
	hub.Publish("ABC123", map[string]interface{}{"type": "ping"})
	hub.Publish("ZZZ999", map[string]interface{}{"type": "ping"})

	if got := drain(sub); len(got) != 0 {
		t.Fatalf("unsubscribed connection still received %d messages", len(got))
	}
}

func TestWriteDropsWhenChannelFull(t *testing.T) {
	sub := NewSubscriber(testLogger())
	for i := 0; i < outChanSize+5; i++ {
		sub.Write(map[string]interface{}{"type": "flood"})
	}
	if got := drain(sub); len(got) != outChanSize {
		t.Fatalf("expected a full buffer of %d messages, got %d", outChanSize, len(got))
	}
}
