package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"backorder-service/internal/domain"
	"backorder-service/internal/infra"
	rabbit "backorder-service/internal/infra/rabbitmq"
	"backorder-service/internal/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ErrOrderAlreadyApplied marks an order-completed event that was delivered
// a second time; fulfillment is not idempotent, so duplicates are skipped
// whole rather than counted twice.
var ErrOrderAlreadyApplied = errors.New("order already applied")

// Advisory notice texts surfaced to shoppers. Limits are soft: the texts
// warn, the purchase always proceeds.
const (
	WarningQuantityExceedsLimit = "Warning: This quantity exceeds the backorder limit. You may experience delays."
	WarningCartExceedsLimit     = "Warning: Your cart contains items that exceed the backorder limit. Proceed with caution."
)

const limitExceededPattern = "backorder.limit_exceeded"

// RedisClient is the slice of redis the ledger needs for caching and
// order deduplication. *redis.Client satisfies it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ RedisClient = (*redis.Client)(nil)

// LedgerService owns the backorder accounting rules: policy updates,
// fulfillment counting and soft-limit validation all flow through here.
type LedgerService struct {
	store       repository.RecordStore
	catalog     infra.CatalogClientInterface
	publisher   rabbit.PublisherInterface
	redisClient RedisClient

	progressTTL time.Duration
	dedupeTTL   time.Duration
	autoDisable bool
}

func NewLedgerService(store repository.RecordStore, catalog infra.CatalogClientInterface, pub rabbit.PublisherInterface) *LedgerService {
	return &LedgerService{
		store:       store,
		catalog:     catalog,
		publisher:   pub,
		progressTTL: 10 * time.Second,
		dedupeTTL:   7 * 24 * time.Hour,
	}
}

func (s *LedgerService) SetRedisClient(client RedisClient) {
	s.redisClient = client
}

// SetAutoDisableOnExceed opts in to flipping an item to disabled (which
// resets its sold counter) the moment a fulfillment exceeds its limit.
// This is a caller-level policy layered on the limit-exceeded flag, not an
// accounting rule, and it defaults to off.
func (s *LedgerService) SetAutoDisableOnExceed(v bool) {
	s.autoDisable = v
}

func (s *LedgerService) SetCacheTTLs(progress, dedupe time.Duration) {
	if progress > 0 {
		s.progressTTL = progress
	}
	if dedupe > 0 {
		s.dedupeTTL = dedupe
	}
}

// SetPolicy stores mode and limit for an item. Turning backorders off
// discards the sold counter unconditionally and releases the manage-stock
// flag; turning them on force-enables it.
func (s *LedgerService) SetPolicy(ctx context.Context, itemID uint64, mode domain.BackorderMode, limit int64) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q: %w", mode, domain.ErrInvalidArgument)
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d: %w", limit, domain.ErrInvalidArgument)
	}

	item, err := s.catalog.GetItemById(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %d: %w", itemID, domain.ErrItemNotFound)
	}

	rec, err := s.store.Get(itemID)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = domain.DefaultRecord(itemID)
	}

	rec.Mode = mode
	rec.Limit = limit
	if mode == domain.ModeDisabled {
		rec.Sold = 0
		rec.ManageStock = false
	} else {
		rec.ManageStock = true
	}

	if err := s.store.Put(rec); err != nil {
		return err
	}

	s.invalidateProgress(ctx, itemID)
	return nil
}

// RecordFulfillment adds quantity to an item's sold counter. Items that
// were never configured, or whose mode is disabled, are a no-op success.
// Not idempotent: callers must deliver each real-world fulfillment once.
func (s *LedgerService) RecordFulfillment(ctx context.Context, itemID uint64, quantity int64) (domain.FulfillmentResult, error) {
	if quantity <= 0 {
		return domain.FulfillmentResult{}, fmt.Errorf("quantity must be positive, got %d: %w", quantity, domain.ErrInvalidArgument)
	}

	rec, err := s.store.Get(itemID)
	if err != nil {
		return domain.FulfillmentResult{}, err
	}
	if rec == nil {
		// Item not tracked; most items never enable backorders.
		return domain.FulfillmentResult{ItemID: itemID}, nil
	}
	if !rec.Mode.Allows() {
		return domain.FulfillmentResult{ItemID: itemID, NewSold: rec.Sold, Limit: rec.Limit}, nil
	}

	newSold, err := s.store.AddSold(itemID, quantity)
	if err != nil {
		return domain.FulfillmentResult{}, err
	}

	s.invalidateProgress(ctx, itemID)

	result := domain.FulfillmentResult{
		ItemID:        itemID,
		NewSold:       newSold,
		Limit:         rec.Limit,
		LimitExceeded: rec.Limit > 0 && newSold > rec.Limit,
	}

	if result.LimitExceeded {
		go s.publishLimitExceeded(context.Background(), result)

		if s.autoDisable {
			// rec predates AddSold; carry the fulfillment's effects
			// forward so the disable write cannot revert them.
			rec.Sold = newSold
			rec.StockStatus = domain.StockOnBackorder
			if err := s.disableItem(ctx, rec); err != nil {
				log.Printf("ledger: auto-disable item %d: %v", itemID, err)
			}
		}
	}

	return result, nil
}

// ApplyOrderCompleted records fulfillment for every line of a completed
// order. Each line is independent: a failure on one never rolls back or
// stops the others. The order number guards against duplicate delivery of
// the same completion event.
func (s *LedgerService) ApplyOrderCompleted(ctx context.Context, orderNo string, lines []domain.OrderLine) ([]LineResult, error) {
	if orderNo == "" {
		return nil, fmt.Errorf("order number must not be empty: %w", domain.ErrInvalidArgument)
	}

	applied, err := s.markOrderApplied(ctx, orderNo)
	if err != nil {
		// A dedupe-store failure must not drop real accounting events.
		log.Printf("ledger: order dedupe check %s: %v", orderNo, err)
	} else if !applied {
		return nil, ErrOrderAlreadyApplied
	}

	results := make([]LineResult, 0, len(lines))
	for _, line := range lines {
		itemID := line.TargetID()
		res, err := s.RecordFulfillment(ctx, itemID, line.Quantity)
		lr := LineResult{ItemID: itemID, Result: res}
		if err != nil {
			lr.Error = err.Error()
			log.Printf("ledger: order %s item %d: %v", orderNo, itemID, err)
		}
		results = append(results, lr)
	}
	return results, nil
}

// LineResult reports the per-line outcome of an order-completed event.
type LineResult struct {
	ItemID uint64                   `json:"itemId"`
	Result domain.FulfillmentResult `json:"result"`
	Error  string                   `json:"error,omitempty"`
}

// ValidatePurchase checks a prospective purchase against the soft limit.
// Pure read: Allowed is always true, an unconfigured item never warns.
func (s *LedgerService) ValidatePurchase(ctx context.Context, itemID uint64, quantity int64) (domain.ValidationResult, error) {
	if quantity <= 0 {
		return domain.ValidationResult{}, fmt.Errorf("quantity must be positive, got %d: %w", quantity, domain.ErrInvalidArgument)
	}

	rec, err := s.store.Get(itemID)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if rec == nil {
		rec = domain.DefaultRecord(itemID)
	}

	out := domain.ValidationResult{Allowed: true}
	if rec.Limit > 0 && rec.Sold+quantity > rec.Limit {
		out.Warning = WarningQuantityExceedsLimit
	}
	return out, nil
}

// CartLineValidation pairs a resolved item id with its advisory result.
type CartLineValidation struct {
	ItemID uint64 `json:"itemId"`
	domain.ValidationResult
	Error string `json:"error,omitempty"`
}

// ValidateCart runs the purchase check over a whole cart at checkout time,
// resolving each line to its variation or product like fulfillment does.
// Lines are independent: a bad line is reported in its slot and never
// stops the rest. The cart-level warning text replaces the per-quantity one.
func (s *LedgerService) ValidateCart(ctx context.Context, lines []domain.OrderLine) ([]CartLineValidation, error) {
	out := make([]CartLineValidation, 0, len(lines))
	for _, line := range lines {
		itemID := line.TargetID()
		clv := CartLineValidation{ItemID: itemID}
		res, err := s.ValidatePurchase(ctx, itemID, line.Quantity)
		if err != nil {
			clv.Error = err.Error()
			log.Printf("ledger: cart line item %d: %v", itemID, err)
		} else {
			if res.Warning != "" {
				res.Warning = WarningCartExceedsLimit
			}
			clv.ValidationResult = res
		}
		out = append(out, clv)
	}
	return out, nil
}

// Progress returns the storefront view for an item, read through a short
// redis cache. Unconfigured items get the default view (nothing shown).
func (s *LedgerService) Progress(ctx context.Context, itemID uint64) (domain.ProgressView, error) {
	cacheKey := progressCacheKey(itemID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var view domain.ProgressView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return view, nil
			}
		}
	}

	rec, err := s.store.Get(itemID)
	if err != nil {
		return domain.ProgressView{}, err
	}
	if rec == nil {
		rec = domain.DefaultRecord(itemID)
	}
	view := rec.View()

	if s.redisClient != nil {
		if data, err := json.Marshal(view); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, s.progressTTL)
		}
	}

	return view, nil
}

// WarmupProgressCache primes the progress cache for a set of items, a few
// at a time. Individual failures are logged and skipped.
func (s *LedgerService) WarmupProgressCache(ctx context.Context, itemIDs []uint64) error {
	if s.redisClient == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, id := range itemIDs {
		id := id
		g.Go(func() error {
			if _, err := s.Progress(ctx, id); err != nil {
				log.Printf("ledger: warm up progress for item %d: %v", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ListRecords backs the admin list screen.
func (s *LedgerService) ListRecords(ctx context.Context) ([]domain.BackorderRecord, error) {
	return s.store.List()
}

func (s *LedgerService) disableItem(ctx context.Context, rec *domain.BackorderRecord) error {
	rec.Mode = domain.ModeDisabled
	rec.Sold = 0
	rec.ManageStock = false
	if err := s.store.Put(rec); err != nil {
		return err
	}
	s.invalidateProgress(ctx, rec.ItemID)
	return nil
}

func (s *LedgerService) publishLimitExceeded(ctx context.Context, result domain.FulfillmentResult) {
	evt := domain.LimitExceededEvent{
		ItemID:     result.ItemID,
		Sold:       result.NewSold,
		Limit:      result.Limit,
		OccurredAt: time.Now(),
	}

	log.Printf("Publishing %s event: %+v", limitExceededPattern, evt)
	if err := s.publisher.Publish(ctx, limitExceededPattern, evt); err != nil {
		// Alert delivery never affects ledger state.
		log.Printf("Failed to publish event: %v", err)
	}
}

// markOrderApplied claims the order number in redis. Returns false when a
// previous delivery already claimed it. Without redis every delivery is
// treated as first.
func (s *LedgerService) markOrderApplied(ctx context.Context, orderNo string) (bool, error) {
	if s.redisClient == nil {
		return true, nil
	}
	return s.redisClient.SetNX(ctx, orderDedupeKey(orderNo), "1", s.dedupeTTL).Result()
}

func (s *LedgerService) invalidateProgress(ctx context.Context, itemID uint64) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, progressCacheKey(itemID))
}

func progressCacheKey(itemID uint64) string {
	return fmt.Sprintf("backorder:progress:%d", itemID)
}

func orderDedupeKey(orderNo string) string {
	return fmt.Sprintf("backorder:order_applied:%s", orderNo)
}
