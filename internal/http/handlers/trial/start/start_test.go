package start

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/estate-leads/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estate-leads/internal/models"
	trialsvc "github.com/magabrotheeeer/estate-leads/internal/services/trial"
)

// MockService реализует интерфейс start.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Start(ctx context.Context, userUID, plan string) (*models.Trial, error) {
	args := m.Called(ctx, userUID, plan)
	if res := args.Get(0); res != nil {
		return res.(*models.Trial), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStartHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		userUID        string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешный запуск пробного периода",
			userUID: "uid-1",
			body:    `{"plan":"premium"}`,
			setupMock: func(m *MockService) {
				m.On("Start", mock.Anything, "uid-1", "premium").Return(&models.Trial{
					ID:        5,
					TrialType: "premium",
					Status:    models.TrialActive,
					EndDate:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"trial_id":5`,
		},
		{
			name:           "запрос без аутентификации",
			userUID:        "",
			body:           `{"plan":"premium"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "неизвестный план отклоняется валидацией",
			userUID:        "uid-1",
			body:           `{"plan":"platinum"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Plan must be one of`,
		},
		{
			name:           "некорректное тело запроса",
			userUID:        "uid-1",
			body:           `{`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:    "повторный запуск даёт конфликт",
			userUID: "uid-1",
			body:    `{"plan":"basic"}`,
			setupMock: func(m *MockService) {
				m.On("Start", mock.Anything, "uid-1", "basic").
					Return(nil, trialsvc.ErrAlreadyTrialing)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"active trial already exists"`,
		},
		{
			name:    "активная подписка даёт конфликт",
			userUID: "uid-1",
			body:    `{"plan":"basic"}`,
			setupMock: func(m *MockService) {
				m.On("Start", mock.Anything, "uid-1", "basic").
					Return(nil, trialsvc.ErrAlreadySubscribed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"active subscription already exists"`,
		},
		{
			name:    "ошибка сервиса",
			userUID: "uid-1",
			body:    `{"plan":"basic"}`,
			setupMock: func(m *MockService) {
				m.On("Start", mock.Anything, "uid-1", "basic").
					Return(nil, errors.New("db unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to start trial"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/trials", strings.NewReader(tt.body))
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
