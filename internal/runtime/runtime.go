package runtime

import (
	"context"
	"time"

	"github.com/vinodismyname/mdsheet/config"
	"golang.org/x/sync/semaphore"
)

// Limits captures the concurrency and document guardrails configured for the server.
type Limits struct {
	// Concurrency caps
	MaxConcurrentRequests int
	MaxOpenDocuments      int

	// Payload and row bounds
	MaxPayloadBytes int
	MaxCellsPerOp   int
	PreviewRowLimit int

	// Timeouts
	OperationTimeout      time.Duration
	AcquireRequestTimeout time.Duration
}

// NewLimits initializes Limits with sensible fallbacks when values are unset.
func NewLimits(maxConcurrentRequests, maxOpenDocuments int) Limits {
	if maxConcurrentRequests <= 0 {
		maxConcurrentRequests = config.DefaultMaxConcurrentRequests
	}
	if maxOpenDocuments <= 0 {
		maxOpenDocuments = config.DefaultMaxOpenDocuments
	}

	return Limits{
		MaxConcurrentRequests: maxConcurrentRequests,
		MaxOpenDocuments:      maxOpenDocuments,
		MaxPayloadBytes:       config.DefaultMaxPayloadBytes,
		MaxCellsPerOp:         config.DefaultMaxCellsPerOp,
		PreviewRowLimit:       config.DefaultPreviewRowLimit,
		OperationTimeout:      config.DefaultOperationTimeout,
		AcquireRequestTimeout: config.DefaultAcquireRequestTimeout,
	}
}

// Controller coordinates runtime semaphores for request and document guardrails.
type Controller struct {
	limits            Limits
	requestSemaphore  *semaphore.Weighted
	documentSemaphore *semaphore.Weighted
}

// NewController constructs a Controller backed by weighted semaphores.
func NewController(limits Limits) *Controller {
	return &Controller{
		limits:            limits,
		requestSemaphore:  semaphore.NewWeighted(int64(limits.MaxConcurrentRequests)),
		documentSemaphore: semaphore.NewWeighted(int64(limits.MaxOpenDocuments)),
	}
}

// AcquireRequest reserves capacity for an incoming request.
func (c *Controller) AcquireRequest(ctx context.Context) error {
	return c.requestSemaphore.Acquire(ctx, 1)
}

// ReleaseRequest frees previously-acquired request capacity.
func (c *Controller) ReleaseRequest() {
	c.requestSemaphore.Release(1)
}

// AcquireDocument reserves an open document slot.
func (c *Controller) AcquireDocument(ctx context.Context) error {
	return c.documentSemaphore.Acquire(ctx, 1)
}

// ReleaseDocument frees an open document slot.
func (c *Controller) ReleaseDocument() {
	c.documentSemaphore.Release(1)
}

// LimitsSnapshot exposes the configured guardrails for telemetry and discovery.
func (c *Controller) LimitsSnapshot() Limits {
	return c.limits
}
