package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orders_etl/internal/adapter/http/handlers/mocks"
	"orders_etl/internal/domain/entities"
	"orders_etl/internal/domain/flatten"
	"orders_etl/internal/infrastructure/logger"
	"orders_etl/internal/usecase"
	"orders_etl/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newRunRouter(h *RunHandler) *gin.Engine {
	r := gin.New()
	r.Use(logger.RequestID(), logger.GinMiddleware(zap.NewNop()))
	r.POST("/v1/runs", h.StartRun)
	r.GET("/v1/runs/:run_id", h.GetRun)
	return r
}

func postRun(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(logger.RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRunHandler_StartRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)

		w := postRun(newRunRouter(NewRunHandler(uc)), "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)

		w := postRun(newRunRouter(NewRunHandler(uc)), `{"bucket":"raw"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase returns mapped error", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{fmt.Errorf("s3://raw/a.json: %w", flatten.ErrMalformedJSON), http.StatusUnprocessableEntity, "MALFORMED_INPUT"},
			{flatten.ErrInvalidOrderRecord, http.StatusUnprocessableEntity, "INVALID_ORDER_RECORD"},
			{flatten.ErrMissingRequiredFields, http.StatusUnprocessableEntity, "MISSING_REQUIRED_FIELDS"},
			{fmt.Errorf("read: %w", interfaces.ErrObjectNotFound), http.StatusNotFound, "INPUT_NOT_FOUND"},
			{usecase.ErrInvalidInputLocation, http.StatusBadRequest, "INVALID_REQUEST"},
			{errors.New("s3 down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tc := range cases {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)
			uc.EXPECT().Run(gomock.Any(), gomock.Any()).Return(entities.FlattenResult{}, tc.err)

			w := postRun(newRunRouter(NewRunHandler(uc)), `{"bucket":"raw","key":"a.json"}`)
			if w.Code != tc.status {
				t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body["code"] != tc.code {
				t.Fatalf("%v: expected code %s, got %s", tc.err, tc.code, body["code"])
			}
			ctrl.Finish()
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)

		want := entities.Invocation{Bucket: "raw", Key: "orders/a.json", RequestID: "req-1"}
		uc.EXPECT().Run(gomock.Any(), want).Return(entities.FlattenResult{
			Status:       entities.ResultStatusOK,
			Input:        want.URI(),
			OutputBucket: "raw",
			Outputs: &entities.OutputPrefixes{
				FactOrders:     "s3://raw/processed/store_sales/fact_orders/",
				FactOrderItems: "s3://raw/processed/store_sales/fact_order_items/",
			},
			Rows:  entities.RowCounts{FactOrders: 2, FactOrderItems: 3},
			RunID: "20250301T101500-req-1",
		}, nil)

		w := postRun(newRunRouter(NewRunHandler(uc)), `{"uri":"s3://raw/orders/a.json"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Status string `json:"status"`
			Rows   struct {
				FactOrders     int `json:"fact_orders"`
				FactOrderItems int `json:"fact_order_items"`
			} `json:"rows"`
			Outputs struct {
				FactOrdersPrefix string `json:"fact_orders_prefix"`
			} `json:"outputs"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Status != "ok" || body.Rows.FactOrders != 2 || body.Rows.FactOrderItems != 3 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if body.Outputs.FactOrdersPrefix != "s3://raw/processed/store_sales/fact_orders/" {
			t.Fatalf("unexpected outputs: %s", w.Body.String())
		}
	})
}

func TestRunHandler_GetRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	get := func(r *gin.Engine, id string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/runs/"+id, nil))
		return w
	}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)
		uc.EXPECT().GetRun(gomock.Any(), "run-x").Return(entities.Run{}, usecase.ErrRunNotFound)

		if w := get(newRunRouter(NewRunHandler(uc)), "run-x"); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("audit disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)
		uc.EXPECT().GetRun(gomock.Any(), "run-x").Return(entities.Run{}, usecase.ErrRunAuditDisabled)

		if w := get(newRunRouter(NewRunHandler(uc)), "run-x"); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)
		uc.EXPECT().GetRun(gomock.Any(), "run-x").Return(entities.Run{}, errors.New("ddb down"))

		if w := get(newRunRouter(NewRunHandler(uc)), "run-x"); w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFlattenOrdersUseCase(ctrl)
		uc.EXPECT().GetRun(gomock.Any(), "run-1").Return(entities.Run{
			ID:        "run-1",
			RequestID: "req-1",
			Status:    entities.RunStatusSucceeded,
			Rows:      entities.RowCounts{FactOrders: 4},
			CreatedAt: time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC),
		}, nil)

		w := get(newRunRouter(NewRunHandler(uc)), "run-1")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["run_id"] != "run-1" || body["status"] != "succeeded" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
