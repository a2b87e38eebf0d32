package mq

import "context"

// NoopBackend discards every publish. Used when no broker is configured.
type NoopBackend struct{}

func NewNoopBackend() *NoopBackend {
	return &NoopBackend{}
}

func (n *NoopBackend) Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error) {
	return "", nil
}

func (n *NoopBackend) Close() error {
	return nil
}
