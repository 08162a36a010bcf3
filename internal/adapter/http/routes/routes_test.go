package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orders_etl/internal/adapter/http/handlers"
	"orders_etl/internal/adapter/http/handlers/mocks"
	"orders_etl/internal/domain/entities"
	"orders_etl/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)
	r := NewRouter(zap.NewNop(), handlers.NewRunHandler(uc))

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("expected a request id header")
		}
	})

	t.Run("runs are routed", func(t *testing.T) {
		uc.EXPECT().GetRun(gomock.Any(), "run-1").Return(entities.Run{}, usecase.ErrRunNotFound)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/runs/run-1", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("swagger", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
