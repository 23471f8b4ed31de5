//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"

	"github.com/stretchr/testify/mock"
)

// MockSigningService is a mock implementation of SigningService
type MockSigningService struct {
	mock.Mock
}

func (m *MockSigningService) Preview(ctx context.Context, req *signing.CanonicalRequest) (*signing.CanonicalPreview, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signing.CanonicalPreview), args.Error(1)
}

func (m *MockSigningService) Sign(ctx context.Context, req *signing.CanonicalRequest, privatePEM string) (*signing.SignResult, error) {
	args := m.Called(ctx, req, privatePEM)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signing.SignResult), args.Error(1)
}

func (m *MockSigningService) Verify(ctx context.Context, req *signing.CanonicalRequest, publicPEM, signatureBase64 string) (*signing.VerifyResult, error) {
	args := m.Called(ctx, req, publicPEM, signatureBase64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signing.VerifyResult), args.Error(1)
}

// MockKeyService is a mock implementation of KeyService
type MockKeyService struct {
	mock.Mock
}

func (m *MockKeyService) GenerateKeyPair(ctx context.Context, modulusBits int, singleLine bool) (*signing.KeyPairPEM, error) {
	args := m.Called(ctx, modulusBits, singleLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signing.KeyPairPEM), args.Error(1)
}

// MockSignatureRecordService is a mock implementation of SignatureRecordService
type MockSignatureRecordService struct {
	mock.Mock
}

func (m *MockSignatureRecordService) List(ctx context.Context, query *signing.SignatureRecordQuery) ([]*signing.SignatureRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*signing.SignatureRecord), args.Error(1)
}

func (m *MockSignatureRecordService) GetByID(ctx context.Context, recordID string) (*signing.SignatureRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signing.SignatureRecord), args.Error(1)
}
