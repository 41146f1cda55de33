package service

import (
	"context"
	"encoding/json"
	"log"

	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/repository/specification"
	"contract-iq-be/internal/repository/unitofwork"
	"contract-iq-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	embedder   *embedding.Service
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embedder *embedding.Service,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		embedder:   embedder,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embeddings for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: payload.DocumentId},
		specification.OrderByChunkIndex{},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to get chunks for document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if len(chunks) == 0 {
		log.Printf("[WARN] No chunks found for document %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.ChunkText
	}

	// Never errors: the embedder hash-falls-back when the provider is down.
	vectors, source := cs.embedder.EmbedBatch(ctx, texts)

	updated := 0
	for i, c := range chunks {
		if err := uow.DocumentChunkRepository().UpdateEmbedding(ctx, c.Id, vectors[i], source); err != nil {
			log.Printf("[ERROR] Failed to update chunk %d of document %s: %v", c.ChunkIndex, payload.DocumentId, err)
			continue
		}
		updated++
	}

	log.Printf("[SUCCESS] Updated %d/%d chunks with embeddings for DocumentId: %s (source: %s)",
		updated, len(chunks), payload.DocumentId, source)
	msg.Ack()
}
