package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOptions(t *testing.T) {
	durable, autoDelete, exclusive := queueOptions("")
	assert.False(t, durable)
	assert.True(t, autoDelete)
	assert.True(t, exclusive)

	durable, autoDelete, exclusive = queueOptions("petstore.audit")
	assert.True(t, durable)
	assert.False(t, autoDelete)
	assert.False(t, exclusive)
}
