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

type DocumentSummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentSummaryMapper
}

func NewDocumentSummaryRepository(db *gorm.DB) contract.DocumentSummaryRepository {
	return &DocumentSummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentSummaryMapper(),
	}
}

func (r *DocumentSummaryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentSummaryRepositoryImpl) Create(ctx context.Context, summary *entity.DocumentSummary) error {
	m := r.mapper.ToModel(summary)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentSummaryRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentSummary{}).Error
}

func (r *DocumentSummaryRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	subQuery := r.db.Table("documents").Select("id").Where("user_id = ?", userId)
	result := r.db.WithContext(ctx).Where("document_id IN (?)", subQuery).Delete(&model.DocumentSummary{})
	return result.RowsAffected, result.Error
}

func (r *DocumentSummaryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentSummary, error) {
	var m model.DocumentSummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentSummaryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentSummary, error) {
	var models []*model.DocumentSummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DocumentSummary, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
