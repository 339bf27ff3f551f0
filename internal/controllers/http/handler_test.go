package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backorder-service/internal/mocks"
	"backorder-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// claimedOrderRedis answers every SetNX with "already taken", simulating
// an order-completed event that was delivered before.
type claimedOrderRedis struct{}

func (claimedOrderRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (claimedOrderRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (claimedOrderRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(false, nil)
}

func (claimedOrderRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}

func TestHandler_OrderCompleted_DuplicateDelivery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := new(mocks.MockRecordStore)
	catalog := new(mocks.MockCatalogClient)

	svc := services.NewLedgerService(store, catalog, new(mocks.MockPublisher))
	svc.SetRedisClient(claimedOrderRedis{})

	handler := NewHandler(svc, services.NewStockSyncService(store, catalog), "test-admin-token")
	r := gin.New()
	handler.RegisterRoutes(r)

	body := `{"orderNo":"ORD-1001","items":[{"productId":1,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders/completed", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	store.AssertNotCalled(t, "AddSold", mock.Anything, mock.Anything)
}
