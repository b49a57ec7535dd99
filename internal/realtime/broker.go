package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
)

const (
	EventTypeInsert = "insert"
	EventTypeUpdate = "update"

	channelPrefix = "memberhub:realtime:"
)

// Event is a row change pushed to subscribers of a topic.
type Event struct {
	Type    string          `json:"type"`
	Table   string          `json:"table"`
	Payload json.RawMessage `json:"payload"`
}

func NewInsertEvent(table string, record any) (Event, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s insert payload: %w", table, err)
	}
	return Event{
		Type:    EventTypeInsert,
		Table:   table,
		Payload: payload,
	}, nil
}

func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

func CheckinsTopic(memberID int64) string {
	return fmt.Sprintf("checkins:%d", memberID)
}

func MessagesTopic(memberID int64) string {
	return fmt.Sprintf("messages:%d", memberID)
}

func channelName(topic string) string {
	return channelPrefix + topic
}

// Broker publishes row changes and delivers them to subscribers through redis pub/sub,
// so every service instance sees inserts made by the others.
type Broker struct {
	rdb     *redis.Client
	metrics *metrics.Manager
}

func NewBroker(rdb *redis.Client, metricsManager *metrics.Manager) *Broker {
	return &Broker{
		rdb:     rdb,
		metrics: metricsManager,
	}
}

func (b *Broker) Publish(ctx context.Context, topic string, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "realtime.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.rdb.Publish(ctx, channelName(topic), raw).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// OnInsert calls callback for every insert event published on topic until the
// returned teardown func is called or ctx is done. Callbacks run sequentially.
// Teardown is idempotent and blocks until delivery stopped, so it must not be
// called from inside the callback.
func (b *Broker) OnInsert(ctx context.Context, topic string, callback func(Event)) (func(), error) {
	pubsub := b.rdb.Subscribe(ctx, channelName(topic))
	// wait for the subscription confirmation, publishes after this point are delivered
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", topic, err)
	}
	if b.metrics != nil {
		b.metrics.GaugeRealtimeSubscribers.Inc()
	}

	done := make(chan struct{})
	msgCh := pubsub.Channel()
	go func() {
		defer close(done)
		for msg := range msgCh {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warnf("realtime %s: drop malformed event: %s", topic, err)
				continue
			}
			if event.Type != EventTypeInsert {
				continue
			}
			callback(event)
		}
	}()

	var once sync.Once
	teardown := func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				log.Errorf("realtime %s: close subscription: %s", topic, err)
			}
			<-done
			if b.metrics != nil {
				b.metrics.GaugeRealtimeSubscribers.Dec()
			}
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			teardown()
		case <-done:
		}
	}()

	return teardown, nil
}
