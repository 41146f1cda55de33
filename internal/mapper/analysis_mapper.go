package mapper

import (
	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/model"
)

// Summaries and risk analyses are append-only, so the mapping is flat.

type DocumentSummaryMapper struct{}

func NewDocumentSummaryMapper() *DocumentSummaryMapper {
	return &DocumentSummaryMapper{}
}

func (m *DocumentSummaryMapper) ToEntity(s *model.DocumentSummary) *entity.DocumentSummary {
	if s == nil {
		return nil
	}
	return &entity.DocumentSummary{
		Id:         s.Id,
		DocumentId: s.DocumentId,
		Content:    s.Content,
		Degraded:   s.Degraded,
		CreatedAt:  s.CreatedAt,
	}
}

func (m *DocumentSummaryMapper) ToModel(s *entity.DocumentSummary) *model.DocumentSummary {
	if s == nil {
		return nil
	}
	return &model.DocumentSummary{
		Id:         s.Id,
		DocumentId: s.DocumentId,
		Content:    s.Content,
		Degraded:   s.Degraded,
		CreatedAt:  s.CreatedAt,
	}
}

type DocumentRiskAnalysisMapper struct{}

func NewDocumentRiskAnalysisMapper() *DocumentRiskAnalysisMapper {
	return &DocumentRiskAnalysisMapper{}
}

func (m *DocumentRiskAnalysisMapper) ToEntity(r *model.DocumentRiskAnalysis) *entity.DocumentRiskAnalysis {
	if r == nil {
		return nil
	}
	return &entity.DocumentRiskAnalysis{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		Content:    r.Content,
		Degraded:   r.Degraded,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *DocumentRiskAnalysisMapper) ToModel(r *entity.DocumentRiskAnalysis) *model.DocumentRiskAnalysis {
	if r == nil {
		return nil
	}
	return &model.DocumentRiskAnalysis{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		Content:    r.Content,
		Degraded:   r.Degraded,
		CreatedAt:  r.CreatedAt,
	}
}
