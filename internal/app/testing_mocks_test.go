//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/stretchr/testify/mock"
)

// mockRecordRepository is a mock implementation of signing.SignatureRecordRepository
type mockRecordRepository struct {
	mock.Mock
}

func (m *mockRecordRepository) Create(ctx context.Context, record *signing.SignatureRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRecordRepository) List(ctx context.Context, query *signing.SignatureRecordQuery) ([]*signing.SignatureRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*signing.SignatureRecord), args.Error(1)
}

func (m *mockRecordRepository) GetByID(ctx context.Context, recordID string) (*signing.SignatureRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signing.SignatureRecord), args.Error(1)
}

// failingPrimitive imports keys through the embedded primitive but fails every signature operation.
type failingPrimitive struct {
	signing.Primitive
	err error
}

func (p *failingPrimitive) Sign(context.Context, signing.KeyHandle, []byte) ([]byte, error) {
	return nil, p.err
}

func (p *failingPrimitive) Verify(context.Context, signing.KeyHandle, []byte, []byte) (bool, error) {
	return false, p.err
}
