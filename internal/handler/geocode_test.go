package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"adresse-geocoder/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGeoCodeService is a mock implementation of the GeoCodeService interface
type MockGeoCodeService struct {
	mock.Mock
}

func (m *MockGeoCodeService) ResolveForward(ctx context.Context, req models.LookupRequest) models.LookupResult {
	args := m.Called(ctx, req)
	return args.Get(0).(models.LookupResult)
}

func float(v float64) *float64 { return &v }

func paixResult(query string) models.LookupResult {
	return models.LookupResult{
		Found:      true,
		Status:     models.StatusFound,
		Query:      query,
		Longitude:  float(2.331289),
		Latitude:   float(48.869156),
		PostalCode: "75002",
		CityCode:   "75102",
		City:       "Paris",
		Label:      "2 Rue de la Paix 75002 Paris",
	}
}

func TestGeoCodeHandler_GeoCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		params         map[string]string
		expectedReq    *models.LookupRequest
		mockResult     models.LookupResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing query parameter",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"missing required query parameter 'q'"}`,
		},
		{
			name:           "invalid limit",
			params:         map[string]string{"q": "2 rue de la paix", "limit": "many"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid limit format"}`,
		},
		{
			name:           "successful geocoding",
			params:         map[string]string{"q": "2 rue de la paix 75002 Paris"},
			expectedReq:    &models.LookupRequest{Query: "2 rue de la paix 75002 Paris"},
			mockResult:     paixResult("2 rue de la paix 75002 Paris"),
			expectedStatus: http.StatusOK,
			expectedBody: `{"found":true,"status":"found","query":"2 rue de la paix 75002 Paris",
				"longitude":2.331289,"latitude":48.869156,"postcode":"75002","citycode":"75102",
				"city":"Paris","label":"2 Rue de la Paix 75002 Paris"}`,
		},
		{
			name:           "citycode and limit are forwarded",
			params:         map[string]string{"q": "2 rue de la paix", "citycode": "75102", "limit": "2"},
			expectedReq:    &models.LookupRequest{Query: "2 rue de la paix", CityCode: "75102", Limit: 2},
			mockResult:     paixResult("2 rue de la paix"),
			expectedStatus: http.StatusOK,
			expectedBody: `{"found":true,"status":"found","query":"2 rue de la paix",
				"longitude":2.331289,"latitude":48.869156,"postcode":"75002","citycode":"75102",
				"city":"Paris","label":"2 Rue de la Paix 75002 Paris"}`,
		},
		{
			name:           "address not found",
			params:         map[string]string{"q": "nowhere at all"},
			expectedReq:    &models.LookupRequest{Query: "nowhere at all"},
			mockResult:     models.NotFound("nowhere at all"),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"found":false,"status":"not_found","query":"nowhere at all"}`,
		},
		{
			name:           "provider failure",
			params:         map[string]string{"q": "2 rue de la paix"},
			expectedReq:    &models.LookupRequest{Query: "2 rue de la paix"},
			mockResult:     models.Failed("2 rue de la paix", assert.AnError),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"geocoding provider unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockGeoCodeService)
			handler := NewGeoCodeHandler(mockSvc)

			if tt.expectedReq != nil {
				mockSvc.On("ResolveForward", mock.Anything, *tt.expectedReq).Return(tt.mockResult)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
			q := req.URL.Query()
			for k, v := range tt.params {
				q.Add(k, v)
			}
			req.URL.RawQuery = q.Encode()
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.GeoCode(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			if tt.expectedReq != nil {
				mockSvc.AssertExpectations(t)
			} else {
				mockSvc.AssertNotCalled(t, "ResolveForward", mock.Anything, mock.Anything)
			}
		})
	}
}
