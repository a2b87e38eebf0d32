package mq

import "context"

// Backend defines the broker-agnostic operations used by the app. The
// server only ever publishes; downstream consumers live elsewhere.
type Backend interface {
	Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// MQ wraps a backend with a stable API.
type MQ struct {
	backend Backend
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

// Publish sends a message to the named queue and returns its id.
func (m *MQ) Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, queue, data, attrs)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}
