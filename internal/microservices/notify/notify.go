// Package notify wakes long-polling requests when a new chat message or
// comment is stored. A wake-up only says "look again"; the poller re-reads
// the database and the timestamp filter decides what is new.
package notify

import (
	"context"
	"fmt"
	"sync"
)

// Notifier fans a wake-up out to every subscriber of a topic.
type Notifier interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe returns a channel that receives at least one value after each
	// Publish on topic, plus a function that releases the subscription.
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, func(), error)
	Close() error
}

func ChatTopic(conversationID int64) string {
	return fmt.Sprintf("chat:%d", conversationID)
}

func CommentTopic(episodeID int64) string {
	return fmt.Sprintf("comments:%d", episodeID)
}

// LocalNotifier delivers wake-ups inside a single process.
type LocalNotifier struct {
	mu     sync.Mutex
	subs   map[string]map[chan struct{}]struct{}
	closed bool
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *LocalNotifier) Publish(_ context.Context, topic string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs[topic] {
		// buffered by one; a pending wake-up already covers this publish
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (n *LocalNotifier) Subscribe(_ context.Context, topic string) (<-chan struct{}, func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, nil, ErrClosed
	}

	ch := make(chan struct{}, 1)
	if n.subs[topic] == nil {
		n.subs[topic] = make(map[chan struct{}]struct{})
	}
	n.subs[topic][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[topic], ch)
			if len(n.subs[topic]) == 0 {
				delete(n.subs, topic)
			}
		})
	}
	return ch, cancel, nil
}

// Subscribers reports how many subscriptions are open on topic.
func (n *LocalNotifier) Subscribers(topic string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[topic])
}

func (n *LocalNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.subs = make(map[string]map[chan struct{}]struct{})
	return nil
}
