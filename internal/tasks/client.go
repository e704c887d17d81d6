package tasks

import (
	"context"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks onto the configured queue.
type Client struct {
	inner *asynq.Client
	queue string
}

// NewClient constructs a task client from redis connection options.
func NewClient(opt asynq.RedisConnOpt, queue string) *Client {
	if queue == "" {
		queue = "default"
	}
	return &Client{inner: asynq.NewClient(opt), queue: queue}
}

// Close releases the underlying asynq client.
func (c *Client) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

// EnqueueInquiryApproved schedules a buyer notification for an approved inquiry.
func (c *Client) EnqueueInquiryApproved(ctx context.Context, p InquiryApproved) error {
	if c == nil || c.inner == nil {
		return nil
	}
	task, err := NewInquiryApprovedTask(p)
	if err != nil {
		return err
	}
	_, err = c.inner.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(5))
	return err
}
