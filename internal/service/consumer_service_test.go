package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/entity"
	"contract-iq-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "EMBED_DOCUMENT_CHUNKS"

func newConsumerFixture(t *testing.T) (*gochannel.GoChannel, *fakeUnitOfWork, IConsumerService) {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	uow := newFakeUnitOfWork()
	svc := NewConsumerService(pubSub, testTopic, &fakeFactory{uow: uow}, embedding.NewService(nil, 8))
	return pubSub, uow, svc
}

func publishEmbedMessage(t *testing.T, pubSub *gochannel.GoChannel, documentId uuid.UUID) {
	t.Helper()
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: documentId})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), payload)))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestConsume_EmbedsPendingChunks(t *testing.T) {
	pubSub, uow, svc := newConsumerFixture(t)
	docId := uuid.New()
	chunkIds := []uuid.UUID{uuid.New(), uuid.New()}
	uow.chunks.findAllFn = func(ctx context.Context) ([]*entity.DocumentChunk, error) {
		return []*entity.DocumentChunk{
			{Id: chunkIds[0], DocumentId: docId, ChunkIndex: 0, ChunkText: "first chunk"},
			{Id: chunkIds[1], DocumentId: docId, ChunkIndex: 1, ChunkText: "second chunk"},
		}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Consume(ctx))

	publishEmbedMessage(t, pubSub, docId)

	waitFor(t, func() bool { return uow.chunks.embeddedCount() == 2 })
	assert.Equal(t, embedding.SourceHash, uow.chunks.embeddedSource(chunkIds[0]))
	assert.Equal(t, embedding.SourceHash, uow.chunks.embeddedSource(chunkIds[1]))
}

func TestConsume_IgnoresMalformedPayload(t *testing.T) {
	pubSub, uow, svc := newConsumerFixture(t)
	docId := uuid.New()
	chunkId := uuid.New()
	uow.chunks.findAllFn = func(ctx context.Context) ([]*entity.DocumentChunk, error) {
		return []*entity.DocumentChunk{
			{Id: chunkId, DocumentId: docId, ChunkIndex: 0, ChunkText: "first chunk"},
		}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Consume(ctx))

	// garbage gets acked and skipped, the next valid message still processes
	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	publishEmbedMessage(t, pubSub, docId)

	waitFor(t, func() bool { return uow.chunks.embeddedCount() == 1 })
	assert.Equal(t, embedding.SourceHash, uow.chunks.embeddedSource(chunkId))
}
