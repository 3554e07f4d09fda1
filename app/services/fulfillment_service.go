package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"gorm.io/gorm"
)

// FulfillmentService reacts to order status transitions after the new state
// has been persisted. It is the only place that fires fulfillment side
// effects; callers (admin order edit, payment webhook) pass the prior status
// explicitly instead of hiding the diff inside a save hook.
//
// The one transition of interest is into delivered while the payment is
// paid: commissions are credited per eligible item and stock is deducted per
// item. Each item is its own database transaction, run in a sequential loop;
// a failed item is logged and skipped, not rolled back across items. A stock
// failure never reverts the already-persisted status change.
//
// The compensating transition is into cancelled: stock is restored for every
// item, independent of the delivery pipeline.
type FulfillmentService struct {
	db            *gorm.DB
	orderItemRepo repositories.OrderItemRepository
	txRepo        repositories.TransactionRepository
	userRepo      repositories.UserRepository
	commissionSvc *CommissionService
	stockSvc      *StockService
}

func NewFulfillmentService(
	db *gorm.DB,
	orderItemRepo repositories.OrderItemRepository,
	txRepo repositories.TransactionRepository,
	userRepo repositories.UserRepository,
	commissionSvc *CommissionService,
	stockSvc *StockService,
) *FulfillmentService {
	return &FulfillmentService{
		db:            db,
		orderItemRepo: orderItemRepo,
		txRepo:        txRepo,
		userRepo:      userRepo,
		commissionSvc: commissionSvc,
		stockSvc:      stockSvc,
	}
}

// HandleStatusChange inspects the (old, new) order status pair and runs the
// matching side-effect pipeline. Re-submitting an order that is already
// delivered+paid matches no transition and is a no-op.
func (s *FulfillmentService) HandleStatusChange(ctx context.Context, order *models.Order, oldOrderStatus string) error {
	if oldOrderStatus != models.OrderStatusDelivered &&
		order.OrderStatus == models.OrderStatusDelivered &&
		order.PaymentStatus == models.PaymentStatusPaid {
		return s.processDelivered(ctx, order)
	}

	if oldOrderStatus != models.OrderStatusCancelled && order.OrderStatus == models.OrderStatusCancelled {
		return s.processCancelled(ctx, order)
	}

	return nil
}

func (s *FulfillmentService) processDelivered(ctx context.Context, order *models.Order) error {
	items, err := s.orderItemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load items for order %s: %w", order.ID, err)
	}

	for i := range items {
		if err := s.creditCommission(ctx, order, &items[i]); err != nil {
			log.Printf("ERROR: FulfillmentService: commission for order %s item %s: %v", order.ID, items[i].ID, err)
		}
	}

	for i := range items {
		s.deductItemStock(ctx, order, &items[i])
	}

	return nil
}

// creditCommission pays at most one commission per order item. The check on
// the (order_item_id, effect_type) key plus the unique index behind it keep
// retries and concurrent deliveries from double-crediting.
func (s *FulfillmentService) creditCommission(ctx context.Context, order *models.Order, item *models.OrderItem) error {
	if item.EarnCode == "" {
		return nil
	}

	exists, err := s.txRepo.ExistsForOrderItem(ctx, item.ID, models.EffectCommission)
	if err != nil {
		return fmt.Errorf("idempotency check failed: %w", err)
	}
	if exists {
		return nil
	}

	reward, influencer, err := s.commissionSvc.RewardFor(ctx, item)
	if err != nil {
		return err
	}
	if influencer == nil || !reward.IsPositive() {
		return nil
	}

	itemID := item.ID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreditBalanceTx(ctx, tx, influencer.ID, reward); err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}
		transaction := &models.Transaction{
			UserID:      influencer.ID,
			Amount:      reward,
			Type:        models.TransactionTypeIn,
			Status:      models.TransactionStatusSuccess,
			OrderItemID: &itemID,
			EffectType:  models.EffectCommission,
			Remarks:     fmt.Sprintf("Commission for Order #%s, Item #%s - %s", order.ID, item.ID, item.ProductName),
		}
		if err := s.txRepo.CreateTx(ctx, tx, transaction); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		return nil
	})
}

// deductItemStock runs stock deduction for one item, guarded by the
// per-item stock_deducted flag. Insufficient stock is a recorded warning,
// not a failure of the surrounding status change.
func (s *FulfillmentService) deductItemStock(ctx context.Context, order *models.Order, item *models.OrderItem) {
	if item.StockDeducted {
		return
	}

	err := s.stockSvc.Deduct(ctx, item.ProductID, item.Qty, item.VariantKey)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			log.Printf("WARNING: FulfillmentService: order %s item %s: %v", order.ID, item.ID, err)
		} else {
			log.Printf("ERROR: FulfillmentService: stock deduction for order %s item %s: %v", order.ID, item.ID, err)
		}
		return
	}

	if err := s.orderItemRepo.MarkStockDeducted(ctx, item.ID); err != nil {
		log.Printf("ERROR: FulfillmentService: failed to mark item %s stock deducted: %v", item.ID, err)
	}
}

func (s *FulfillmentService) processCancelled(ctx context.Context, order *models.Order) error {
	items, err := s.orderItemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load items for order %s: %w", order.ID, err)
	}

	for _, item := range items {
		if err := s.stockSvc.Add(ctx, item.ProductID, item.Qty, item.VariantKey); err != nil {
			log.Printf("WARNING: FulfillmentService: stock restoration for order %s item %s: %v", order.ID, item.ID, err)
		}
	}

	return nil
}
