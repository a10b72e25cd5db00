package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"printshop-be/internal/analytics"
	"printshop-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAnalyticsService is a mock implementation of the analytics service
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Revenue(ctx context.Context, from, to time.Time) (*analytics.RevenueSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.RevenueSummary), args.Error(1)
}

func (m *MockAnalyticsService) OrdersByProductType(ctx context.Context, from, to time.Time) ([]analytics.ProductTypeCount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.ProductTypeCount), args.Error(1)
}

func newAnalyticsMux(svc analytics.Service) *http.ServeMux {
	mux := http.NewServeMux()
	NewAnalyticsHandler(svc).Register(mux)
	return mux
}

func adminReq(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := utils.SetCustomerContext(req.Context(), "admin-1", "ops@example.com", "admin")
	return req.WithContext(ctx)
}

func TestAnalyticsHandler_Revenue(t *testing.T) {
	t.Run("should return the summary for admins", func(t *testing.T) {
		svc := new(MockAnalyticsService)
		mux := newAnalyticsMux(svc)

		svc.On("Revenue", mock.Anything, mock.Anything, mock.Anything).
			Return(&analytics.RevenueSummary{GrossRevenue: 15230.50, OrderCount: 84}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, adminReq("GET", "/api/analytics/revenue"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "15230.5")
	})

	t.Run("should refuse non-admin callers", func(t *testing.T) {
		mux := newAnalyticsMux(new(MockAnalyticsService))

		req := authed(httptest.NewRequest("GET", "/api/analytics/revenue", nil))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should reject malformed period bounds", func(t *testing.T) {
		mux := newAnalyticsMux(new(MockAnalyticsService))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, adminReq("GET", "/api/analytics/revenue?from=yesterday"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyticsHandler_ProductTypes(t *testing.T) {
	t.Run("should pass the parsed period to the service", func(t *testing.T) {
		svc := new(MockAnalyticsService)
		mux := newAnalyticsMux(svc)

		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		svc.On("OrdersByProductType", mock.Anything, from, to).
			Return([]analytics.ProductTypeCount{{ProductType: "flyer", Orders: 12, Units: 6000}}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, adminReq("GET", "/api/analytics/product-types?from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "flyer")
		svc.AssertExpectations(t)
	})
}
