package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
)

// signatureRecordService implements the SignatureRecordService interface to expose stored audit records.
type signatureRecordService struct {
	recordRepo signing.SignatureRecordRepository
	logger     logger.Logger
}

// NewSignatureRecordService creates a new signatureRecordService instance
func NewSignatureRecordService(recordRepo signing.SignatureRecordRepository, logger logger.Logger) (signing.SignatureRecordService, error) {
	if recordRepo == nil {
		return nil, fmt.Errorf("signature record repository cannot be nil")
	}
	return &signatureRecordService{
		recordRepo: recordRepo,
		logger:     logger,
	}, nil
}

// List retrieves signature records matching query.
func (s *signatureRecordService) List(ctx context.Context, query *signing.SignatureRecordQuery) ([]*signing.SignatureRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return records, nil
}

// GetByID retrieves a signature record by its ID.
func (s *signatureRecordService) GetByID(ctx context.Context, recordID string) (*signing.SignatureRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return record, nil
}
