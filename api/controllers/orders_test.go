package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kittohq/kitto-backend/api/middleware"
	internalorders "github.com/kittohq/kitto-backend/internal/orders"
	"github.com/kittohq/kitto-backend/pkg/enums"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	"github.com/kittohq/kitto-backend/pkg/pagination"
)

type stubOrdersService struct {
	submitted  *internalorders.SubmitOrderInput
	submitErr  error
	view       *internalorders.OrderView
	statusSent *enums.OrderStatus
}

func (s *stubOrdersService) SubmitOrder(ctx context.Context, operatorID uuid.UUID, input internalorders.SubmitOrderInput) (*internalorders.OrderView, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submitted = &input
	return s.view, nil
}

func (s *stubOrdersService) ListOperatorOrders(ctx context.Context, operatorID uuid.UUID, filters internalorders.ListFilters, params pagination.Params) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{Orders: []internalorders.OrderView{}}, nil
}

func (s *stubOrdersService) GetOrder(ctx context.Context, operatorID, orderID uuid.UUID) (*internalorders.OrderView, error) {
	return s.view, nil
}

func (s *stubOrdersService) AdminListOrders(ctx context.Context, filters internalorders.ListFilters, params pagination.Params) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{Orders: []internalorders.OrderView{}}, nil
}

func (s *stubOrdersService) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*internalorders.OrderView, error) {
	return s.view, nil
}

func (s *stubOrdersService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*internalorders.OrderView, error) {
	s.statusSent = &target
	return s.view, nil
}

func submitBody() string {
	return `{
  "customer_name": "Kasun Silva",
  "customer_address": "12 Beach Road",
  "district_id": "` + uuid.NewString() + `",
  "city_name": "Negombo",
  "order_source": "facebook",
  "items": [
    {"product_id": "` + uuid.NewString() + `", "quantity": 1, "sale_amount": "1500"}
  ]
}`
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithOperatorID(req.Context(), uuid.NewString())
	return req.WithContext(ctx)
}

func TestSubmitOrderReturns201(t *testing.T) {
	svc := &stubOrdersService{view: &internalorders.OrderView{
		ID:           uuid.New(),
		Status:       enums.OrderStatusPending,
		TotalPayable: decimal.NewFromInt(1900),
	}}

	rec := httptest.NewRecorder()
	SubmitOrder(svc, nil)(rec, authedRequest(http.MethodPost, "/api/v1/orders", submitBody()))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.submitted == nil || svc.submitted.CustomerName != "Kasun Silva" {
		t.Fatal("input not forwarded to the service")
	}

	var envelope struct {
		Data internalorders.OrderView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending order in body, got %s", envelope.Data.Status)
	}
}

func TestSubmitOrderRejectsUnknownFields(t *testing.T) {
	svc := &stubOrdersService{}

	rec := httptest.NewRecorder()
	SubmitOrder(svc, nil)(rec, authedRequest(http.MethodPost, "/api/v1/orders", `{"bogus":true}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.submitted != nil {
		t.Fatal("service must not be called")
	}
}

func TestSubmitOrderRequiresIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(submitBody()))
	SubmitOrder(&stubOrdersService{}, nil)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSubmitOrderMapsServiceErrors(t *testing.T) {
	svc := &stubOrdersService{submitErr: pkgerrors.New(pkgerrors.CodeValidation, "sale_amount must be at least the retail price")}

	rec := httptest.NewRecorder()
	SubmitOrder(svc, nil)(rec, authedRequest(http.MethodPost, "/api/v1/orders", submitBody()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "retail price") {
		t.Fatalf("expected service message in body, got %s", rec.Body.String())
	}
}

func TestAdminUpdateOrderStatusParsesTarget(t *testing.T) {
	svc := &stubOrdersService{view: &internalorders.OrderView{Status: enums.OrderStatusProcessing}}

	router := chi.NewRouter()
	router.Patch("/api/admin/v1/orders/{orderId}/status", AdminUpdateOrderStatus(svc, nil))

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPatch, "/api/admin/v1/orders/"+uuid.NewString()+"/status", `{"status":"processing"}`)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.statusSent == nil || *svc.statusSent != enums.OrderStatusProcessing {
		t.Fatal("target status not forwarded")
	}

	rec = httptest.NewRecorder()
	req = authedRequest(http.MethodPatch, "/api/admin/v1/orders/"+uuid.NewString()+"/status", `{"status":"teleported"}`)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestListOrdersRejectsBadStatusFilter(t *testing.T) {
	rec := httptest.NewRecorder()
	ListOrders(&stubOrdersService{}, nil)(rec, authedRequest(http.MethodGet, "/api/v1/orders?status=bogus", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
