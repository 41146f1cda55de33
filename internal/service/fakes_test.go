package service

import (
	"context"
	"sync"
	"time"

	"contract-iq-be/internal/config"
	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/repository/contract"
	"contract-iq-be/internal/repository/specification"
	"contract-iq-be/internal/repository/unitofwork"
	"contract-iq-be/pkg/llm"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func testConfig(uploadDir string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			UploadDir:      uploadDir,
			MaxUploadBytes: 10 * 1024 * 1024,
			RequestTimeout: 5 * time.Second,
			CacheTTL:       5 * time.Minute,
		},
		Ai: config.AIConfig{
			CompletionModel: "test/completion-model",
			ChatModel:       "test/chat-model",
			EmbeddingModel:  "test/embedding-model",
			EmbeddingDim:    8,
		},
		Ingest: config.IngestConfig{
			ChunkSize:       50,
			ChunkOverlap:    10,
			InsertBatchSize: 2,
		},
		Retrieval: config.RetrievalConfig{
			MatchThreshold: 0.3,
			MatchCount:     10,
		},
	}
}

type fakeDocumentRepository struct {
	findOneFn func(ctx context.Context) (*entity.Document, error)
	findAllFn func(ctx context.Context) ([]*entity.Document, error)
	created   []*entity.Document
	createErr error
	deleted   int64
	deleteErr error
}

func (f *fakeDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	f.created = append(f.created, document)
	return f.createErr
}

func (f *fakeDocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	return nil
}

func (f *fakeDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeDocumentRepository) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	return f.deleted, f.deleteErr
}

func (f *fakeDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeDocumentChunkRepository struct {
	createBulkFn func(batch []*entity.DocumentChunk) error
	bulks        [][]*entity.DocumentChunk
	findAllFn    func(ctx context.Context) ([]*entity.DocumentChunk, error)
	searchFn     func(ctx context.Context) ([]*contract.ScoredDocumentChunk, error)
	mu           sync.Mutex
	embedded     map[uuid.UUID]string
	deleted      int64
	deleteErr    error
}

func (f *fakeDocumentChunkRepository) embeddedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.embedded)
}

func (f *fakeDocumentChunkRepository) embeddedSource(id uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.embedded[id]
}

func (f *fakeDocumentChunkRepository) Create(ctx context.Context, chunk *entity.DocumentChunk) error {
	return nil
}

func (f *fakeDocumentChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	f.bulks = append(f.bulks, chunks)
	if f.createBulkFn != nil {
		return f.createBulkFn(chunks)
	}
	return nil
}

func (f *fakeDocumentChunkRepository) Update(ctx context.Context, chunk *entity.DocumentChunk) error {
	return nil
}

func (f *fakeDocumentChunkRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.embedded == nil {
		f.embedded = make(map[uuid.UUID]string)
	}
	f.embedded[id] = source
	return nil
}

func (f *fakeDocumentChunkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeDocumentChunkRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (f *fakeDocumentChunkRepository) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) (int64, error) {
	return f.deleted, f.deleteErr
}

func (f *fakeDocumentChunkRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	return nil, nil
}

func (f *fakeDocumentChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDocumentChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeDocumentChunkRepository) SearchSimilarWithScore(ctx context.Context, embedding []float32, documentId uuid.UUID, limit int, threshold float64) ([]*contract.ScoredDocumentChunk, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx)
	}
	return nil, nil
}

type fakeDocumentSummaryRepository struct {
	created   []*entity.DocumentSummary
	createErr error
	deleted   int64
	deleteErr error
}

func (f *fakeDocumentSummaryRepository) Create(ctx context.Context, summary *entity.DocumentSummary) error {
	f.created = append(f.created, summary)
	return f.createErr
}

func (f *fakeDocumentSummaryRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (f *fakeDocumentSummaryRepository) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	return f.deleted, f.deleteErr
}

func (f *fakeDocumentSummaryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentSummary, error) {
	return nil, nil
}

func (f *fakeDocumentSummaryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentSummary, error) {
	return nil, nil
}

type fakeDocumentRiskAnalysisRepository struct {
	created   []*entity.DocumentRiskAnalysis
	createErr error
	deleted   int64
	deleteErr error
}

func (f *fakeDocumentRiskAnalysisRepository) Create(ctx context.Context, analysis *entity.DocumentRiskAnalysis) error {
	f.created = append(f.created, analysis)
	return f.createErr
}

func (f *fakeDocumentRiskAnalysisRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (f *fakeDocumentRiskAnalysisRepository) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	return f.deleted, f.deleteErr
}

func (f *fakeDocumentRiskAnalysisRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentRiskAnalysis, error) {
	return nil, nil
}

func (f *fakeDocumentRiskAnalysisRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentRiskAnalysis, error) {
	return nil, nil
}

type fakeUnitOfWork struct {
	documents  *fakeDocumentRepository
	chunks     *fakeDocumentChunkRepository
	summaries  *fakeDocumentSummaryRepository
	analyses   *fakeDocumentRiskAnalysisRepository
	begun      bool
	committed  bool
	rolledBack bool
	beginErr   error
	commitErr  error
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error {
	f.begun = true
	return f.beginErr
}

func (f *fakeUnitOfWork) Commit() error {
	if f.commitErr == nil {
		f.committed = true
	}
	return f.commitErr
}

func (f *fakeUnitOfWork) Rollback() error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

func (f *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return f.documents
}

func (f *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return f.chunks
}

func (f *fakeUnitOfWork) DocumentSummaryRepository() contract.DocumentSummaryRepository {
	return f.summaries
}

func (f *fakeUnitOfWork) DocumentRiskAnalysisRepository() contract.DocumentRiskAnalysisRepository {
	return f.analyses
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		documents: &fakeDocumentRepository{},
		chunks:    &fakeDocumentChunkRepository{},
		summaries: &fakeDocumentSummaryRepository{},
		analyses:  &fakeDocumentRiskAnalysisRepository{},
	}
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingProvider struct {
	text    string
	err     error
	calls   int
	history [][]llm.Message
	models  []string
}

func (p *recordingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}
	p.calls++
	p.history = append(p.history, history)
	p.models = append(p.models, opts.Model)
	return p.text, p.err
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

// flakyProvider fails the first n calls, then answers normally.
type flakyProvider struct {
	failures int
	err      error
	text     string
	calls    int
}

func (p *flakyProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", p.err
	}
	return p.text, nil
}

func (p *flakyProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

// blockingProvider waits out the request context, like a hung upstream.
type blockingProvider struct{}

func (p *blockingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (p *blockingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

type fakeMessagePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakeMessagePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, content []byte, fileType string) (string, error) {
	return s.text, s.err
}
