package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// FeedID is the id of the element that displays the queue feed.
const FeedID = "queueFeed"

// maxQueued bounds the messages kept by a Queue.
const maxQueued = 50

// Message is one published queue entry.
type Message struct {
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Queue is an in-memory bounded message queue.
type Queue struct {
	mu       sync.Mutex
	messages []Message
	now      func() time.Time
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Publish appends a message, dropping the oldest past the bound.
func (q *Queue) Publish(body string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, Message{Body: body, PublishedAt: q.now().UTC()})
	if len(q.messages) > maxQueued {
		q.messages = q.messages[len(q.messages)-maxQueued:]
	}
}

// Snapshot returns the queued messages oldest first.
func (q *Queue) Snapshot() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Message(nil), q.messages...)
}

type feedPayload struct {
	Count    int       `json:"count"`
	Messages []Message `json:"messages"`
}

// feedData renders the queue as the data component payload.
type feedData struct {
	queue *Queue
}

func (f feedData) RenderData(context.Context) (string, error) {
	messages := f.queue.Snapshot()
	if messages == nil {
		messages = []Message{}
	}
	data, err := json.Marshal(feedPayload{Count: len(messages), Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encode feed: %w", err)
	}
	return string(data), nil
}
