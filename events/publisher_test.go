package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	keys []string
	err  error
}

func (r *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	r.keys = append(r.keys, key)
	return r.err
}

func TestMultiPublishesToAll(t *testing.T) {
	first := &recordingPublisher{}
	second := &recordingPublisher{}

	err := Multi{first, nil, second}.Publish(context.Background(), OrderCreated, map[string]int{"id": 1})

	assert.NoError(t, err)
	assert.Equal(t, []string{OrderCreated}, first.keys)
	assert.Equal(t, []string{OrderCreated}, second.keys)
}

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("broker down")
	failing := &recordingPublisher{err: boom}
	healthy := &recordingPublisher{}

	err := Multi{failing, healthy}.Publish(context.Background(), OrderStatusUpdated, nil)

	assert.ErrorIs(t, err, boom)
	assert.Len(t, healthy.keys, 1, "a failing publisher must not stop the others")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), OrderCreated, nil))
}
