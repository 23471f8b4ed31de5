//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRecord() *signing.SignatureRecord {
	preview := examplePreview()
	return &signing.SignatureRecord{
		ID:              "4b0e7c4e-3e5b-4c8e-9a57-0f4d1c2f6a10",
		Operation:       signing.OperationSign,
		HTTPMethod:      "POST",
		Endpoint:        "/v1/qris/create",
		Timestamp:       "2024-01-01T00:00:00+07:00",
		BodyHashHex:     preview.BodyHashHex,
		CanonicalString: preview.CanonicalString,
		SignatureBase64: "c2ln",
		DateTimeCreated: time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC),
		Valid:           true,
	}
}

func serveQuery(t *testing.T, handlerFunc gin.HandlerFunc, url string, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params

	handlerFunc(c)
	return w
}

func TestRecordHandler_ListRecords_Success(t *testing.T) {
	mockRecordService := new(MockSignatureRecordService)
	handler := NewRecordHandler(mockRecordService)

	mockRecordService.
		On("List", mock.Anything, mock.MatchedBy(func(q *signing.SignatureRecordQuery) bool {
			return q.Operation == signing.OperationSign &&
				q.Endpoint == "/v1/qris/create" &&
				q.Limit == 10 &&
				q.Offset == 5 &&
				q.SortOrder == "asc"
		})).
		Return([]*signing.SignatureRecord{testRecord()}, nil)

	w := serveQuery(t, handler.ListRecords, "/signatures?operation=sign&endpoint=/v1/qris/create&limit=10&offset=5&sortOrder=asc", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []SignatureRecordResponse
	decodeBody(t, w, &response)
	require.Len(t, response, 1)
	assert.Equal(t, testRecord().ID, response[0].ID)
	assert.Equal(t, testRecord().CanonicalString, response[0].CanonicalString)
	assert.True(t, response[0].Valid)
	mockRecordService.AssertExpectations(t)
}

func TestRecordHandler_ListRecords_DefaultsAndEmpty(t *testing.T) {
	mockRecordService := new(MockSignatureRecordService)
	handler := NewRecordHandler(mockRecordService)

	mockRecordService.
		On("List", mock.Anything, mock.MatchedBy(func(q *signing.SignatureRecordQuery) bool {
			return q.Limit == 50 && q.Offset == 0 && q.SortOrder == "desc" && q.Operation == ""
		})).
		Return([]*signing.SignatureRecord{}, nil)

	w := serveQuery(t, handler.ListRecords, "/signatures", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestRecordHandler_ListRecords_InvalidQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"non-numeric limit", "/signatures?limit=ten"},
		{"non-numeric offset", "/signatures?offset=x"},
		{"negative offset", "/signatures?offset=-1"},
		{"unknown operation", "/signatures?operation=encrypt"},
		{"unknown sort order", "/signatures?sortOrder=sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRecordService := new(MockSignatureRecordService)
			handler := NewRecordHandler(mockRecordService)

			w := serveQuery(t, handler.ListRecords, tt.url, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockRecordService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordHandler_GetRecordByID(t *testing.T) {
	mockRecordService := new(MockSignatureRecordService)
	handler := NewRecordHandler(mockRecordService)

	record := testRecord()
	mockRecordService.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	w := serveQuery(t, handler.GetRecordByID, "/signatures/"+record.ID, gin.Params{{Key: "id", Value: record.ID}})

	assert.Equal(t, http.StatusOK, w.Code)
	var response SignatureRecordResponse
	decodeBody(t, w, &response)
	assert.Equal(t, record.ID, response.ID)
	assert.Equal(t, record.Operation, response.Operation)
	assert.True(t, record.DateTimeCreated.Equal(response.DateTimeCreated))
}

func TestRecordHandler_GetRecordByID_NotFound(t *testing.T) {
	mockRecordService := new(MockSignatureRecordService)
	handler := NewRecordHandler(mockRecordService)

	mockRecordService.
		On("GetByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: missing", signing.ErrRecordNotFound))

	w := serveQuery(t, handler.GetRecordByID, "/signatures/missing", gin.Params{{Key: "id", Value: "missing"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "signature record not found")
}
