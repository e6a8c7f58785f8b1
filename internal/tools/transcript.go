package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const transcriptTTL = 24 * time.Hour

// TranscriptEntry records one tool invocation made on behalf of a
// conversation, for operator debugging. Row-store contents are never
// cached here, only the invocation audit trail.
type TranscriptEntry struct {
	Tool   string            `json:"tool"`
	Args   map[string]string `json:"args"`
	Result string            `json:"result"`
	At     time.Time         `json:"at"`
}

// TranscriptStore persists per-conversation tool transcripts in Redis
// with a 24h TTL.
type TranscriptStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewTranscriptStore creates a Redis-backed transcript store.
func NewTranscriptStore(client *redis.Client) *TranscriptStore {
	if client == nil {
		panic("tools: redis client cannot be nil")
	}
	return &TranscriptStore{
		redis:  client,
		tracer: otel.Tracer("luna.internal.tools.transcript"),
	}
}

// Append adds one invocation to the conversation's transcript.
func (s *TranscriptStore) Append(ctx context.Context, conversationID string, entry TranscriptEntry) error {
	ctx, span := s.tracer.Start(ctx, "tools.append_transcript")
	defer span.End()

	data, err := json.Marshal(entry)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("tools: failed to marshal transcript entry: %w", err)
	}
	key := transcriptKey(conversationID)
	if err := s.redis.RPush(ctx, key, data).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("tools: failed to persist transcript entry: %w", err)
	}
	if err := s.redis.Expire(ctx, key, transcriptTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("tools: failed to set transcript ttl: %w", err)
	}
	return nil
}

// List returns the conversation's transcript in invocation order.
func (s *TranscriptStore) List(ctx context.Context, conversationID string) ([]TranscriptEntry, error) {
	ctx, span := s.tracer.Start(ctx, "tools.list_transcript")
	defer span.End()

	raw, err := s.redis.LRange(ctx, transcriptKey(conversationID), 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("tools: failed to load transcript: %w", err)
	}

	entries := make([]TranscriptEntry, 0, len(raw))
	for _, item := range raw {
		var entry TranscriptEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("tools: failed to decode transcript entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func transcriptKey(conversationID string) string {
	return fmt.Sprintf("tool_transcript:%s", conversationID)
}
