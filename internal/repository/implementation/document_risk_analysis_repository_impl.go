package implementation

import (
	"context"
	"errors"

	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/mapper"
	"contract-iq-be/internal/model"
	"contract-iq-be/internal/repository/contract"
	"contract-iq-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRiskAnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentRiskAnalysisMapper
}

func NewDocumentRiskAnalysisRepository(db *gorm.DB) contract.DocumentRiskAnalysisRepository {
	return &DocumentRiskAnalysisRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentRiskAnalysisMapper(),
	}
}

func (r *DocumentRiskAnalysisRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRiskAnalysisRepositoryImpl) Create(ctx context.Context, analysis *entity.DocumentRiskAnalysis) error {
	m := r.mapper.ToModel(analysis)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*analysis = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRiskAnalysisRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentRiskAnalysis{}).Error
}

func (r *DocumentRiskAnalysisRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	subQuery := r.db.Table("documents").Select("id").Where("user_id = ?", userId)
	result := r.db.WithContext(ctx).Where("document_id IN (?)", subQuery).Delete(&model.DocumentRiskAnalysis{})
	return result.RowsAffected, result.Error
}

func (r *DocumentRiskAnalysisRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentRiskAnalysis, error) {
	var m model.DocumentRiskAnalysis
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRiskAnalysisRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentRiskAnalysis, error) {
	var models []*model.DocumentRiskAnalysis
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DocumentRiskAnalysis, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
