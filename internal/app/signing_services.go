package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/request-signer/internal/domain/canonical"
	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/infrastructure/keyformat"
	"github.com/MGTheTrain/request-signer/internal/pkg/logger"
	"github.com/MGTheTrain/request-signer/internal/pkg/pemutil"
	"github.com/google/uuid"
)

// signingService implements the SigningService interface. Every call imports
// its own key handle and drops it on return.
type signingService struct {
	primitive  signing.Primitive
	builder    *canonical.Builder
	adapter    *keyformat.Adapter
	recordRepo signing.SignatureRecordRepository
	logger     logger.Logger
}

// NewSigningService creates a new signingService instance. recordRepo may be nil, in which case no audit records are written.
func NewSigningService(
	primitive signing.Primitive,
	builder *canonical.Builder,
	adapter *keyformat.Adapter,
	recordRepo signing.SignatureRecordRepository,
	logger logger.Logger,
) (signing.SigningService, error) {
	if primitive == nil || builder == nil || adapter == nil {
		return nil, fmt.Errorf("primitive, builder and adapter are required")
	}
	return &signingService{
		primitive:  primitive,
		builder:    builder,
		adapter:    adapter,
		recordRepo: recordRepo,
		logger:     logger,
	}, nil
}

// Preview builds the canonical string of req.
func (s *signingService) Preview(ctx context.Context, req *signing.CanonicalRequest) (*signing.CanonicalPreview, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request cannot be nil", signing.ErrInvalidMetadata)
	}
	return s.builder.Build(ctx, req.HTTPMethod, req.Endpoint, req.Payload, req.Timestamp)
}

// Sign signs the canonical string of req and returns the standard Base64 signature.
func (s *signingService) Sign(ctx context.Context, req *signing.CanonicalRequest, privatePEM string) (*signing.SignResult, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}

	key, err := s.adapter.ImportPrivateKey(ctx, privatePEM)
	if err != nil {
		return nil, err
	}

	signature, err := s.primitive.Sign(ctx, key, []byte(preview.CanonicalString))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", signing.ErrSignFailed, err)
	}

	result := &signing.SignResult{
		CanonicalPreview: *preview,
		SignatureBase64:  pemutil.EncodeBase64(signature),
	}

	s.logger.Info("Signed request ", preview.CanonicalString)
	s.record(ctx, signing.OperationSign, req, preview, result.SignatureBase64, true)
	return result, nil
}

// Verify checks signatureBase64 against the canonical string of req.
// A signature that does not match is reported through VerifyResult.Valid, not as an error.
func (s *signingService) Verify(ctx context.Context, req *signing.CanonicalRequest, publicPEM, signatureBase64 string) (*signing.VerifyResult, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}

	key, err := s.adapter.ImportPublicKey(ctx, publicPEM)
	if err != nil {
		return nil, err
	}

	signature, err := pemutil.DecodeBase64Tolerant(signatureBase64)
	if err != nil {
		return nil, err
	}

	valid, err := s.primitive.Verify(ctx, key, signature, []byte(preview.CanonicalString))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", signing.ErrVerifyFailed, err)
	}

	s.logger.Info("Verified request ", preview.CanonicalString, " valid=", valid)
	s.record(ctx, signing.OperationVerify, req, preview, pemutil.EncodeBase64(signature), valid)
	return &signing.VerifyResult{
		CanonicalPreview: *preview,
		Valid:            valid,
	}, nil
}

// record stores an audit entry. Failures are logged and never fail the call.
func (s *signingService) record(ctx context.Context, operation string, req *signing.CanonicalRequest, preview *signing.CanonicalPreview, signatureBase64 string, valid bool) {
	if s.recordRepo == nil {
		return
	}

	record := &signing.SignatureRecord{
		ID:              uuid.NewString(),
		Operation:       operation,
		HTTPMethod:      req.HTTPMethod,
		Endpoint:        req.Endpoint,
		Timestamp:       req.Timestamp,
		BodyHashHex:     preview.BodyHashHex,
		CanonicalString: preview.CanonicalString,
		SignatureBase64: signatureBase64,
		DateTimeCreated: time.Now().UTC(),
		Valid:           valid,
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		s.logger.Warn("Failed to store signature record: ", err)
	}
}
