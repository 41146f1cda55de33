package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"contract-iq-be/internal/config"
	"contract-iq-be/internal/constant"
	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/pkg/apperrors"
	"contract-iq-be/internal/pkg/logger"
	"contract-iq-be/internal/repository/specification"
	"contract-iq-be/internal/repository/unitofwork"
	"contract-iq-be/pkg/cache"
	"contract-iq-be/pkg/embedding"
	"contract-iq-be/pkg/events"
	"contract-iq-be/pkg/llm"
	"contract-iq-be/pkg/llm/failover"
	pktNats "contract-iq-be/pkg/nats"
	"contract-iq-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IAnalysisService interface {
	Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
	RiskAnalysis(ctx context.Context, userId uuid.UUID, req *dto.RiskAnalysisRequest) (*dto.RiskAnalysisResponse, error)
	Query(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type analysisService struct {
	uowFactory     unitofwork.RepositoryFactory
	embedder       *embedding.Service
	retriever      *retrieval.Retriever
	completion     *failover.Client
	resultCache    *cache.Cache
	eventPublisher *pktNats.Publisher
	cfg            *config.Config
	logger         logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	embedder *embedding.Service,
	retriever *retrieval.Retriever,
	completion *failover.Client,
	resultCache *cache.Cache,
	eventPublisher *pktNats.Publisher,
	cfg *config.Config,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		uowFactory:     uowFactory,
		embedder:       embedder,
		retriever:      retriever,
		completion:     completion,
		resultCache:    resultCache,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         log,
	}
}

func (s *analysisService) Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.App.RequestTimeout)
	defer cancel()

	if err := s.verifyOwnership(ctx, userId, req.DocumentId); err != nil {
		return nil, err
	}

	cacheKey := cache.Key("summary", req.DocumentId.String())
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.(*dto.SummarizeResponse), nil
	}

	docContext, err := s.fullDocumentContext(ctx, req.DocumentId, "\n")
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.SummarySystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.SummaryUserPromptFormat, docContext)},
	}

	text, degraded, err := s.complete(ctx, constant.UseCaseSummary, messages,
		llm.WithModel(s.cfg.Ai.CompletionModel),
		llm.WithMaxTokens(1000),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return nil, err
	}

	summary := entity.DocumentSummary{
		Id:         uuid.New(),
		DocumentId: req.DocumentId,
		Content:    text,
		Degraded:   degraded,
		CreatedAt:  time.Now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentSummaryRepository().Create(ctx, &summary); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSummaryCreated(req.DocumentId, degraded)); err != nil {
			s.logger.Warn("analysis", "failed to publish SUMMARY_CREATED event", map[string]interface{}{"error": err.Error()})
		}
	}

	resp := &dto.SummarizeResponse{
		SummaryId:  summary.Id,
		DocumentId: req.DocumentId,
		Summary:    text,
		Degraded:   degraded,
	}
	if !degraded {
		s.resultCache.Set(cacheKey, resp)
	}
	return resp, nil
}

func (s *analysisService) RiskAnalysis(ctx context.Context, userId uuid.UUID, req *dto.RiskAnalysisRequest) (*dto.RiskAnalysisResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.App.RequestTimeout)
	defer cancel()

	if err := s.verifyOwnership(ctx, userId, req.DocumentId); err != nil {
		return nil, err
	}

	cacheKey := cache.Key("risk", req.DocumentId.String())
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.(*dto.RiskAnalysisResponse), nil
	}

	docContext, err := s.fullDocumentContext(ctx, req.DocumentId, "\n")
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.RiskAnalysisSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.RiskAnalysisUserPromptFormat, docContext)},
	}

	text, degraded, err := s.complete(ctx, constant.UseCaseRiskAnalysis, messages,
		llm.WithModel(s.cfg.Ai.CompletionModel),
		llm.WithMaxTokens(2000),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return nil, err
	}

	analysis := entity.DocumentRiskAnalysis{
		Id:         uuid.New(),
		DocumentId: req.DocumentId,
		Content:    text,
		Degraded:   degraded,
		CreatedAt:  time.Now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRiskAnalysisRepository().Create(ctx, &analysis); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewRiskAnalysisCreated(req.DocumentId, degraded)); err != nil {
			s.logger.Warn("analysis", "failed to publish RISK_ANALYSIS_CREATED event", map[string]interface{}{"error": err.Error()})
		}
	}

	resp := &dto.RiskAnalysisResponse{
		AnalysisId: analysis.Id,
		DocumentId: req.DocumentId,
		Analysis:   text,
		Degraded:   degraded,
	}
	if !degraded {
		s.resultCache.Set(cacheKey, resp)
	}
	return resp, nil
}

func (s *analysisService) Query(ctx context.Context, userId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.App.RequestTimeout)
	defer cancel()

	if err := s.verifyOwnership(ctx, userId, req.DocumentId); err != nil {
		return nil, err
	}

	if !req.UseRag {
		return s.queryDirect(ctx, req, dto.QuerySourceApi)
	}

	queryVec := s.queryEmbedding(ctx, req.Query)

	chunks, _, err := s.retriever.Search(ctx, queryVec, req.DocumentId, s.cfg.Retrieval.MatchCount, s.cfg.Retrieval.MatchThreshold)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &dto.QueryResponse{
			Answer: constant.EmptyDocumentAnswer,
			Source: dto.QuerySourceRag,
		}, nil
	}

	docContext := joinChunks(chunks, "\n\n")

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.QueryRagSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.QueryUserPromptFormat, docContext, req.Query)},
	}

	// The RAG attempt must not degrade to canned on a transport-class
	// failure: that case gets one retry in direct mode over all chunks.
	// Only credential exhaustion (degraded=true below) stays canned.
	answer, degraded, err := s.completion.CompleteWithFallback(ctx, constant.UseCaseQuery, messages,
		llm.WithModel(s.cfg.Ai.CompletionModel),
		llm.WithMaxTokens(800),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, apperrors.Timeout("analysis timed out")
		}
		if errors.Is(err, failover.ErrNoCredentials) {
			return nil, apperrors.ServiceUnavailable("completion service is not configured")
		}
		s.logger.Warn("analysis", "RAG query failed, retrying direct", map[string]interface{}{"error": err.Error()})
		return s.queryDirect(ctx, req, dto.QuerySourceApi)
	}
	if degraded {
		return &dto.QueryResponse{
			Answer: answer,
			Source: dto.QuerySourceError,
		}, nil
	}

	return &dto.QueryResponse{
		Answer:    answer,
		Source:    dto.QuerySourceRag,
		ModelUsed: s.cfg.Ai.CompletionModel,
	}, nil
}

// queryDirect answers over all chunks without retrieval.
func (s *analysisService) queryDirect(ctx context.Context, req *dto.QueryRequest, source string) (*dto.QueryResponse, error) {
	chunks, err := s.retriever.AllChunks(ctx, req.DocumentId)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &dto.QueryResponse{
			Answer: constant.EmptyDocumentAnswer,
			Source: source,
		}, nil
	}

	docContext := joinChunks(chunks, "\n\n")

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.QueryDirectSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.QueryUserPromptFormat, docContext, req.Query)},
	}

	answer, degraded, err := s.complete(ctx, constant.UseCaseQuery, messages,
		llm.WithModel(s.cfg.Ai.CompletionModel),
		llm.WithMaxTokens(800),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return nil, err
	}
	if degraded {
		return &dto.QueryResponse{
			Answer: answer,
			Source: dto.QuerySourceError,
		}, nil
	}

	return &dto.QueryResponse{
		Answer:    answer,
		Source:    source,
		ModelUsed: s.cfg.Ai.CompletionModel,
	}, nil
}

// complete wraps the failover client and translates its failures:
// timeouts and missing credentials become typed errors, anything else
// (transport, empty completion) degrades to the canned response.
func (s *analysisService) complete(ctx context.Context, useCase string, messages []llm.Message, opts ...llm.Option) (string, bool, error) {
	text, degraded, err := s.completion.CompleteWithFallback(ctx, useCase, messages, opts...)
	if err == nil {
		return text, degraded, nil
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return "", false, apperrors.Timeout("analysis timed out")
	}
	if errors.Is(err, failover.ErrNoCredentials) {
		return "", false, apperrors.ServiceUnavailable("completion service is not configured")
	}
	s.logger.Warn("analysis", "completion failed, using canned response", map[string]interface{}{
		"use_case": useCase,
		"error":    err.Error(),
	})
	canned, ok := constant.CannedResponses()[useCase]
	if !ok {
		canned = constant.CannedGenericResponse
	}
	return canned, true, nil
}

func (s *analysisService) verifyOwnership(ctx context.Context, userId, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return apperrors.NotFound("document not found or access denied")
	}
	return nil
}

func (s *analysisService) fullDocumentContext(ctx context.Context, documentId uuid.UUID, sep string) (string, error) {
	chunks, err := s.retriever.AllChunks(ctx, documentId)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", apperrors.NotFound("no content found for document")
	}
	docContext := joinChunks(chunks, sep)
	if strings.TrimSpace(docContext) == "" {
		return "", apperrors.Validation("document has no readable content")
	}
	return docContext, nil
}

// queryEmbedding embeds the query, caching by content hash.
func (s *analysisService) queryEmbedding(ctx context.Context, query string) []float32 {
	key := cache.Key("qemb", query)
	if cached, found := s.resultCache.Get(key); found {
		return cached.([]float32)
	}
	vec, _ := s.embedder.EmbedOne(ctx, query)
	s.resultCache.Set(key, vec)
	return vec
}

func joinChunks(chunks []*entity.DocumentChunk, sep string) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.ChunkText
	}
	return strings.Join(parts, sep)
}
