package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSignatureRecordRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSignatureRecordRepository creates a new GORM-based SignatureRecordRepository implementation
func NewGormSignatureRecordRepository(db *gorm.DB, logger logger.Logger) (signing.SignatureRecordRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormSignatureRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSignatureRecordRepository) Create(ctx context.Context, record *signing.SignatureRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SignatureRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create signature record: %w", err)
	}

	r.logger.Info("Created signature record with id ", record.ID)
	return nil
}

func (r *gormSignatureRecordRepository) List(ctx context.Context, query *signing.SignatureRecordQuery) ([]*signing.SignatureRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.SignatureRecordModel
	dbQuery := r.db.WithContext(ctx).Model(&models.SignatureRecordModel{})

	if query.Operation != "" {
		dbQuery = dbQuery.Where("operation = ?", query.Operation)
	}
	if query.Endpoint != "" {
		dbQuery = dbQuery.Where("endpoint = ?", query.Endpoint)
	}

	order := query.SortOrder
	if order == "" {
		order = "desc"
	}
	dbQuery = dbQuery.Order(fmt.Sprintf("date_time_created %s", order))

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch signature records: %w", err)
	}

	domainList := make([]*signing.SignatureRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormSignatureRecordRepository) GetByID(ctx context.Context, recordID string) (*signing.SignatureRecord, error) {
	var model models.SignatureRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", recordID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", signing.ErrRecordNotFound, recordID)
		}
		return nil, fmt.Errorf("failed to fetch signature record: %w", err)
	}
	return model.ToDomain(), nil
}
