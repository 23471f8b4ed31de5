package models

import (
	"time"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
)

// SignatureRecordModel is the GORM database model for signature audit records
type SignatureRecordModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	Operation       string    `gorm:"not null;index;type:varchar(10)"`
	HTTPMethod      string    `gorm:"not null;type:varchar(16)"`
	Endpoint        string    `gorm:"not null;index;type:varchar(2048)"`
	Timestamp       string    `gorm:"not null;type:varchar(64)"`
	BodyHashHex     string    `gorm:"not null;type:char(64)"`
	CanonicalString string    `gorm:"not null;type:text"`
	SignatureBase64 string    `gorm:"not null;type:text"`
	Valid           bool      `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (SignatureRecordModel) TableName() string {
	return "signature_records"
}

// ToDomain converts GORM model to domain entity
func (m *SignatureRecordModel) ToDomain() *signing.SignatureRecord {
	return &signing.SignatureRecord{
		ID:              m.ID,
		Operation:       m.Operation,
		HTTPMethod:      m.HTTPMethod,
		Endpoint:        m.Endpoint,
		Timestamp:       m.Timestamp,
		BodyHashHex:     m.BodyHashHex,
		CanonicalString: m.CanonicalString,
		SignatureBase64: m.SignatureBase64,
		DateTimeCreated: m.DateTimeCreated,
		Valid:           m.Valid,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SignatureRecordModel) FromDomain(r *signing.SignatureRecord) {
	m.ID = r.ID
	m.Operation = r.Operation
	m.HTTPMethod = r.HTTPMethod
	m.Endpoint = r.Endpoint
	m.Timestamp = r.Timestamp
	m.BodyHashHex = r.BodyHashHex
	m.CanonicalString = r.CanonicalString
	m.SignatureBase64 = r.SignatureBase64
	m.Valid = r.Valid
	m.DateTimeCreated = r.DateTimeCreated
}
