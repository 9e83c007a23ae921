package sse

import (
	"testing"

	"finanzas/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyOwner(t *testing.T) {
	mine := Subscribe("u-1")
	other := Subscribe("u-2")
	defer Unsubscribe("u-1", mine)
	defer Unsubscribe("u-2", other)

	PublishTransaction(&models.Transaction{ID: "t-1", UserID: "u-1", Amount: 25000})

	select {
	case event := <-mine.Events:
		assert.Contains(t, event, `"t-1"`)
	default:
		t.Fatal("expected event for owner")
	}

	select {
	case <-other.Events:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	stream := Subscribe("u-3")
	Unsubscribe("u-3", stream)

	PublishTransaction(&models.Transaction{ID: "t-2", UserID: "u-3"})

	select {
	case <-stream.Events:
		t.Fatal("unsubscribed stream still receives events")
	default:
	}
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	stream := Subscribe("u-4")
	defer Unsubscribe("u-4", stream)

	// Overfill the buffer; publish must not block.
	for i := 0; i < 40; i++ {
		PublishTransaction(&models.Transaction{ID: "t", UserID: "u-4"})
	}
	require.True(t, len(stream.Events) <= cap(stream.Events))
}
