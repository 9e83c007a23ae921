// Package sse fans transaction-created events out to dashboard
// clients so the web UI updates when a chat message lands a
// transaction.
package sse

import (
	"encoding/json"
	"sync"

	"finanzas/api/logger"
	"finanzas/api/models"

	"go.uber.org/zap"
)

type ClientStream struct {
	Events chan string
	Done   chan struct{}
}

var (
	streams = make(map[string][]*ClientStream)
	mu      sync.RWMutex
)

// Subscribe registers a stream for a user. One user may have several
// dashboard tabs open.
func Subscribe(userID string) *ClientStream {
	stream := &ClientStream{
		Events: make(chan string, 16),
		Done:   make(chan struct{}),
	}
	mu.Lock()
	streams[userID] = append(streams[userID], stream)
	mu.Unlock()
	return stream
}

func Unsubscribe(userID string, stream *ClientStream) {
	mu.Lock()
	defer mu.Unlock()
	subs := streams[userID]
	for i, s := range subs {
		if s == stream {
			streams[userID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(streams[userID]) == 0 {
		delete(streams, userID)
	}
}

// PublishTransaction sends a transaction-created event to every stream
// of the owning user. Slow or gone clients are skipped, never waited
// on.
func PublishTransaction(tx *models.Transaction) {
	payload, err := json.Marshal(tx)
	if err != nil {
		logger.Get().Error("failed to marshal transaction event",
			zap.Error(err))
		return
	}

	mu.RLock()
	subs := append([]*ClientStream(nil), streams[tx.UserID]...)
	mu.RUnlock()

	for _, stream := range subs {
		select {
		case stream.Events <- string(payload):
		default:
			logger.Get().Debug("dropping event for slow client",
				zap.String("user_id", tx.UserID))
		}
	}
}
