package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const decisionChannel = "moderation:events"

// DecisionEvent is published whenever a moderation decision lands, so
// other services (audit trails, author notifications) can react.
type DecisionEvent struct {
	Kind      string    `json:"kind"` // approve, reject, batch_approve, batch_reject, undo
	PostID    string    `json:"post_id,omitempty"`
	UndoID    string    `json:"undo_id,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes moderation decision events to Redis. The server
// runs without one when Redis is not configured.
type Publisher struct {
	client *redis.Client
	ctx    context.Context
}

// NewPublisher creates a publisher and verifies the connection
func NewPublisher(addr, password string, db int) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Publisher{
		client: client,
		ctx:    ctx,
	}, nil
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}

// PublishDecision publishes a single-post decision
func (p *Publisher) PublishDecision(kind, postID string) error {
	return p.publish(DecisionEvent{
		Kind:      kind,
		PostID:    postID,
		Timestamp: time.Now(),
	})
}

// PublishBatch publishes a batch decision or its undo
func (p *Publisher) PublishBatch(kind, undoID string, count int) error {
	return p.publish(DecisionEvent{
		Kind:      kind,
		UndoID:    undoID,
		Count:     count,
		Timestamp: time.Now(),
	})
}

func (p *Publisher) publish(event DecisionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(p.ctx, decisionChannel, data).Err()
}

// Subscribe returns a subscription to the decision channel (used by
// consumers and tests)
func (p *Publisher) Subscribe() *redis.PubSub {
	return p.client.Subscribe(p.ctx, decisionChannel)
}
