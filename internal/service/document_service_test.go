package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/pkg/apperrors"
	"contract-iq-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	service   IDocumentService
	uow       *fakeUnitOfWork
	publisher *fakeMessagePublisher
	extractor *stubExtractor
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	cfg := testConfig(t.TempDir())
	uow := newFakeUnitOfWork()
	publisher := &fakeMessagePublisher{}
	extractor := &stubExtractor{text: "Extracted contract text with enough words to survive chunking."}

	svc := NewDocumentService(
		&fakeFactory{uow: uow},
		publisher,
		embedding.NewService(nil, cfg.Ai.EmbeddingDim),
		extractor,
		nil,
		cfg,
		nopLogger{},
	)
	return &documentFixture{service: svc, uow: uow, publisher: publisher, extractor: extractor}
}

func TestUpload_RejectsUnsupportedFileType(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.service.Upload(context.Background(), uuid.New(), "malware.exe", []byte("x"))

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpload_RejectsEmptyFile(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.service.Upload(context.Background(), uuid.New(), "contract.txt", nil)

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpload_ExtractorFailure(t *testing.T) {
	f := newDocumentFixture(t)
	f.extractor.err = errors.New("tika unreachable")

	_, err := f.service.Upload(context.Background(), uuid.New(), "contract.pdf", []byte("%PDF-"))

	assert.True(t, apperrors.IsKind(err, apperrors.KindServiceError))
}

func TestUpload_RejectsWhitespaceOnlyExtraction(t *testing.T) {
	f := newDocumentFixture(t)
	f.extractor.text = "   \n\t  "

	_, err := f.service.Upload(context.Background(), uuid.New(), "contract.pdf", []byte("%PDF-"))

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpload_CreatesDocumentChunksAndPublishes(t *testing.T) {
	f := newDocumentFixture(t)
	userId := uuid.New()

	res, err := f.service.Upload(context.Background(), userId, "contract.pdf", []byte("%PDF-"))

	require.NoError(t, err)
	require.Len(t, f.uow.documents.created, 1)
	doc := f.uow.documents.created[0]
	assert.Equal(t, userId, doc.UserId)
	assert.Equal(t, ".pdf", doc.FileType)
	assert.Equal(t, res.DocumentId, doc.Id)

	require.Len(t, f.uow.chunks.bulks, 1)
	for i, chunk := range f.uow.chunks.bulks[0] {
		assert.Equal(t, doc.Id, chunk.DocumentId)
		assert.Equal(t, i, chunk.ChunkIndex)
		// embeddings are filled in later by the consumer
		assert.Nil(t, chunk.Embedding)
	}

	require.Len(t, f.publisher.payloads, 1)
	var msg dto.PublishEmbedDocumentMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &msg))
	assert.Equal(t, doc.Id, msg.DocumentId)
}

func TestProcess_RejectsEmptyText(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.service.Process(context.Background(), uuid.New(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		Text:       "   ",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestProcess_DocumentNotFound(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.service.Process(context.Background(), uuid.New(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		Text:       "some text",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestProcess_InsertsEmbeddedChunksInBatches(t *testing.T) {
	f := newDocumentFixture(t)
	docId := uuid.New()
	f.uow.documents.findOneFn = func(ctx context.Context) (*entity.Document, error) {
		return &entity.Document{Id: docId}, nil
	}

	// long enough to split into several chunks at the test chunk size
	text := strings.Repeat("All obligations survive termination of this agreement. ", 10)
	res, err := f.service.Process(context.Background(), uuid.New(), &dto.ProcessDocumentRequest{
		DocumentId: docId,
		Text:       text,
	})

	require.NoError(t, err)
	assert.Equal(t, res.TotalChunks, res.ChunksInserted)
	assert.Zero(t, res.FailedChunks)
	assert.Greater(t, res.TotalChunks, 1)

	total := 0
	for _, batch := range f.uow.chunks.bulks {
		assert.LessOrEqual(t, len(batch), 2)
		for _, chunk := range batch {
			assert.NotEmpty(t, chunk.Embedding)
			assert.Equal(t, entity.EmbeddingSourceHash, chunk.EmbeddingSource)
		}
		total += len(batch)
	}
	assert.Equal(t, res.TotalChunks, total)
}

func TestProcess_CountsFailedBatchesAndContinues(t *testing.T) {
	f := newDocumentFixture(t)
	docId := uuid.New()
	f.uow.documents.findOneFn = func(ctx context.Context) (*entity.Document, error) {
		return &entity.Document{Id: docId}, nil
	}
	calls := 0
	f.uow.chunks.createBulkFn = func(batch []*entity.DocumentChunk) error {
		calls++
		if calls == 1 {
			return errors.New("insert failed")
		}
		return nil
	}

	text := strings.Repeat("Indemnification clauses apply to both parties hereto. ", 10)
	res, err := f.service.Process(context.Background(), uuid.New(), &dto.ProcessDocumentRequest{
		DocumentId: docId,
		Text:       text,
	})

	require.NoError(t, err)
	assert.Greater(t, res.FailedChunks, 0)
	assert.Equal(t, res.TotalChunks, res.ChunksInserted+res.FailedChunks)
}

func TestList_MapsDocuments(t *testing.T) {
	f := newDocumentFixture(t)
	f.uow.documents.findAllFn = func(ctx context.Context) ([]*entity.Document, error) {
		return []*entity.Document{
			{Id: uuid.New(), FileName: "a.pdf", FileType: ".pdf"},
			{Id: uuid.New(), FileName: "b.txt", FileType: ".txt"},
		}, nil
	}

	items, err := f.service.List(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a.pdf", items[0].FileName)
	assert.Equal(t, ".txt", items[1].FileType)
}

func TestDeleteAll_AggregatesCountsAndCommits(t *testing.T) {
	f := newDocumentFixture(t)
	f.uow.documents.deleted = 2
	f.uow.chunks.deleted = 14
	f.uow.summaries.deleted = 1
	f.uow.analyses.deleted = 1

	res, err := f.service.DeleteAll(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, f.uow.committed)
	assert.Equal(t, int64(2), res.DocumentsDeleted)
	assert.Equal(t, int64(14), res.ChunksDeleted)
	assert.Equal(t, int64(1), res.SummariesDeleted)
	assert.Equal(t, int64(1), res.AnalysesDeleted)
}

func TestDeleteAll_RollsBackOnChildError(t *testing.T) {
	f := newDocumentFixture(t)
	f.uow.chunks.deleteErr = errors.New("delete failed")

	_, err := f.service.DeleteAll(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.False(t, f.uow.committed)
	assert.True(t, f.uow.rolledBack)
}
