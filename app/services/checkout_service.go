package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SnapClient is the slice of the Midtrans Snap API the checkout needs.
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// CheckoutService turns a session cart into a pending order. Stock is only
// validated here; deduction happens at fulfillment time, when the order is
// delivered and paid.
type CheckoutService struct {
	db            *gorm.DB
	userRepo      repositories.UserRepository
	addressRepo   repositories.AddressRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	productRepo   repositories.ProductRepository
	stockSvc      *StockService
	snapClient    SnapClient
}

func NewCheckoutService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepository,
	stockSvc *StockService,
	snapClient SnapClient,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		userRepo:      userRepo,
		addressRepo:   addressRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		stockSvc:      stockSvc,
		snapClient:    snapClient,
	}
}

// PlaceOrder creates the order and its items from the cart in one database
// transaction, then requests a Midtrans payment URL for it. Returns the
// order and the payment URL.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, billingAddressID, shippingAddressID string, items []CartItem, shippingCost decimal.Decimal) (*models.Order, string, error) {
	if len(items) == 0 {
		return nil, "", errors.New("cart is empty")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", errors.New("user not found")
	}

	billing, err := s.addressRepo.FindByID(ctx, billingAddressID)
	if err != nil || billing == nil {
		return nil, "", errors.New("billing address not found")
	}
	shipping, err := s.addressRepo.FindByID(ctx, shippingAddressID)
	if err != nil || shipping == nil {
		return nil, "", errors.New("shipping address not found")
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	subTotal := decimal.Zero
	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get product %s: %w", item.ProductID, err)
		}
		if product == nil {
			return nil, "", fmt.Errorf("product %s not found", item.ProductID)
		}

		if ok, available := s.stockSvc.ValidateAvailability(product, item.Qty, item.VariantKey); !ok {
			return nil, "", &InsufficientStockError{ProductName: product.Name, Available: available, Requested: item.Qty}
		}

		var campaignID *string
		if item.CampaignID != "" {
			id := item.CampaignID
			campaignID = &id
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSku:  product.Sku,
			VariantKey:  item.VariantKey,
			Qty:         item.Qty,
			Price:       item.Price,
			EarnCode:    item.EarnCode,
			CampaignID:  campaignID,
		})
		subTotal = subTotal.Add(item.Subtotal())
	}

	order := &models.Order{
		UserID:            userID,
		OrderCode:         fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8]),
		OrderDate:         time.Now(),
		OrderStatus:       models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		SubTotal:          subTotal,
		ShippingCost:      shippingCost,
		TaxAmount:         decimal.Zero,
		BillingAddressID:  billing.ID,
		ShippingAddressID: shipping.ID,
	}
	order.CalculateTotal()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	paymentURL, err := s.requestPaymentURL(ctx, order, user)
	if err != nil {
		// The order stands; payment can be retried from the order page.
		log.Printf("WARNING: CheckoutService: payment URL for order %s: %v", order.ID, err)
		return order, "", nil
	}

	return order, paymentURL, nil
}

func (s *CheckoutService) requestPaymentURL(ctx context.Context, order *models.Order, user *models.User) (string, error) {
	if s.snapClient == nil {
		return "", errors.New("payment gateway not configured")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: order.GrandTotal.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
	}

	resp, midtransErr := s.snapClient.CreateTransaction(req)
	if midtransErr != nil {
		return "", fmt.Errorf("midtrans snap transaction failed: %w", midtransErr.RawError)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.UpdateMidtransDetails(ctx, tx, order.ID, resp.Token, resp.RedirectURL)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store payment details: %w", err)
	}

	return resp.RedirectURL, nil
}
