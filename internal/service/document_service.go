package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contract-iq-be/internal/config"
	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/pkg/apperrors"
	"contract-iq-be/internal/pkg/logger"
	"contract-iq-be/internal/repository/specification"
	"contract-iq-be/internal/repository/unitofwork"
	"contract-iq-be/pkg/embedding"
	"contract-iq-be/pkg/events"
	"contract-iq-be/pkg/extract"
	pktNats "contract-iq-be/pkg/nats"
	"contract-iq-be/pkg/textsplit"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, fileName string, content []byte) (*dto.UploadDocumentResponse, error)
	Process(ctx context.Context, userId uuid.UUID, req *dto.ProcessDocumentRequest) (*dto.ProcessDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentItemResponse, error)
	DeleteAll(ctx context.Context, userId uuid.UUID) (*dto.DeleteDocumentsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	embedder         *embedding.Service
	extractor        extract.Extractor
	splitter         *textsplit.Splitter
	eventPublisher   *pktNats.Publisher
	cfg              *config.Config
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embedder *embedding.Service,
	extractor extract.Extractor,
	eventPublisher *pktNats.Publisher,
	cfg *config.Config,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		embedder:         embedder,
		extractor:        extractor,
		splitter:         textsplit.New(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		eventPublisher:   eventPublisher,
		cfg:              cfg,
		logger:           log,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, fileName string, content []byte) (*dto.UploadDocumentResponse, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !config.IsSupportedFileType(ext) {
		return nil, apperrors.Validation(fmt.Sprintf("unsupported file type: %s", ext))
	}
	if len(content) == 0 {
		return nil, apperrors.Validation("uploaded file is empty")
	}
	if len(content) > s.cfg.App.MaxUploadBytes {
		return nil, apperrors.Validation("uploaded file exceeds the size limit")
	}

	text, err := s.extractor.Extract(ctx, content, ext)
	if err != nil {
		return nil, apperrors.ServiceError("failed to extract text from file", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("no text extracted from file")
	}

	storagePath, err := s.writeToStorage(userId, fileName, content)
	if err != nil {
		return nil, apperrors.ServiceError("failed to store uploaded file", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	document := entity.Document{
		Id:          uuid.New(),
		UserId:      userId,
		FileName:    fileName,
		FileType:    ext,
		StoragePath: storagePath,
		Metadata: map[string]interface{}{
			"byte_size": len(content),
			"mime":      mimeForExtension(ext),
		},
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	// Chunks land without vectors; the consumer fills them in.
	chunks := s.splitter.Split(text)
	chunkEntities := make([]*entity.DocumentChunk, len(chunks))
	for i, chunk := range chunks {
		chunkEntities[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			ChunkIndex: i,
			ChunkText:  chunk,
			CreatedAt:  time.Now(),
		}
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedDocumentMessage{
		DocumentId: document.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// Lifecycle events are auxiliary: log failures, never fail the request.
	if s.eventPublisher != nil {
		evt := events.NewDocumentUploaded(document.Id, userId, fileName)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish DOCUMENT_UPLOADED event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("document", "document uploaded", map[string]interface{}{
		"document_id": document.Id.String(),
		"chunks":      len(chunks),
	})

	return &dto.UploadDocumentResponse{
		DocumentId: document.Id,
		FileName:   fileName,
		FileType:   ext,
	}, nil
}

func (s *documentService) Process(ctx context.Context, userId uuid.UUID, req *dto.ProcessDocumentRequest) (*dto.ProcessDocumentResponse, error) {
	start := time.Now()

	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.Validation("text content is required and cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.DocumentId},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperrors.NotFound("document not found")
	}

	chunks := s.splitter.Split(req.Text)
	if len(chunks) == 0 {
		return nil, apperrors.Validation("no chunks created from text")
	}

	vectors, source := s.embedder.EmbedBatch(ctx, chunks)

	chunkEntities := make([]*entity.DocumentChunk, len(chunks))
	for i, chunk := range chunks {
		chunkEntities[i] = &entity.DocumentChunk{
			Id:              uuid.New(),
			DocumentId:      req.DocumentId,
			ChunkIndex:      i,
			ChunkText:       chunk,
			Embedding:       vectors[i],
			EmbeddingSource: source,
			CreatedAt:       time.Now(),
		}
	}

	// Insert in batches; a failed batch is counted and processing continues.
	batchSize := s.cfg.Ingest.InsertBatchSize
	inserted := 0
	failed := 0
	for i := 0; i < len(chunkEntities); i += batchSize {
		end := i + batchSize
		if end > len(chunkEntities) {
			end = len(chunkEntities)
		}
		batch := chunkEntities[i:end]
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, batch); err != nil {
			s.logger.Error("document", "failed to insert chunk batch", map[string]interface{}{
				"document_id": req.DocumentId.String(),
				"batch_start": i,
				"error":       err.Error(),
			})
			failed += len(batch)
			continue
		}
		inserted += len(batch)
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentProcessed(req.DocumentId, inserted, failed)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish DOCUMENT_PROCESSED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ProcessDocumentResponse{
		DocumentId:     req.DocumentId,
		ChunksInserted: inserted,
		TotalChunks:    len(chunks),
		FailedChunks:   failed,
		ProcessingTime: time.Since(start).Seconds(),
	}, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.DocumentOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentItemResponse, len(documents))
	for i, d := range documents {
		items[i] = &dto.DocumentItemResponse{
			Id:        d.Id,
			FileName:  d.FileName,
			FileType:  d.FileType,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		}
	}
	return items, nil
}

func (s *documentService) DeleteAll(ctx context.Context, userId uuid.UUID) (*dto.DeleteDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Children first, then documents.
	summaries, err := uow.DocumentSummaryRepository().DeleteAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	analyses, err := uow.DocumentRiskAnalysisRepository().DeleteAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	chunks, err := uow.DocumentChunkRepository().DeleteAllByUserIdUnscoped(ctx, userId)
	if err != nil {
		return nil, err
	}
	documents, err := uow.DocumentRepository().DeleteAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Storage cleanup is best effort.
	userDir := filepath.Join(s.cfg.App.UploadDir, userId.String())
	if err := os.RemoveAll(userDir); err != nil {
		s.logger.Warn("document", "failed to remove user upload directory", map[string]interface{}{
			"dir":   userDir,
			"error": err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentsDeleted(userId, documents, chunks)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish DOCUMENTS_DELETED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.DeleteDocumentsResponse{
		DocumentsDeleted: documents,
		ChunksDeleted:    chunks,
		SummariesDeleted: summaries,
		AnalysesDeleted:  analyses,
	}, nil
}

func (s *documentService) writeToStorage(userId uuid.UUID, fileName string, content []byte) (string, error) {
	dir := filepath.Join(s.cfg.App.UploadDir, userId.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	// Base name only, so a crafted filename cannot escape the user dir.
	path := filepath.Join(dir, filepath.Base(fileName))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func mimeForExtension(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}
