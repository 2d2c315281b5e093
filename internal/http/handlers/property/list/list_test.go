package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListProperties(ctx context.Context, limit, offset int) ([]*models.Property, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный список с пагинацией",
			url:  "/api/v1/properties?limit=2&offset=4",
			setupMock: func(m *MockService) {
				m.On("ListProperties", mock.Anything, 2, 4).Return([]*models.Property{
					{ID: 5, StreetNum: "1024", StreetName: "Elm Street", Zip: "78701"},
					{ID: 6, StreetNum: "17", StreetName: "Oak Avenue", Zip: "78702"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":2`,
		},
		{
			name: "некорректная пагинация заменяется умолчаниями",
			url:  "/api/v1/properties?limit=-1&offset=abc",
			setupMock: func(m *MockService) {
				m.On("ListProperties", mock.Anything, 20, 0).Return([]*models.Property{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":0`,
		},
		{
			name: "ошибка сервиса",
			url:  "/api/v1/properties",
			setupMock: func(m *MockService) {
				m.On("ListProperties", mock.Anything, 20, 0).
					Return(nil, errors.New("db unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to list properties"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
