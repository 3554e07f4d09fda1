package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"gorm.io/gorm"
)

// MidtransNotificationPayload is the subset of the webhook body the service
// acts on. The authoritative status is re-fetched from the Midtrans API; the
// payload status is only logged when it disagrees.
type MidtransNotificationPayload struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// CoreAPIClient is the slice of the Midtrans Core API used for verification.
type CoreAPIClient interface {
	CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

// PaymentService maps gateway notifications onto the order's payment and
// order statuses and hands the resulting transition to the fulfillment
// pipeline (a cancellation after payment restores stock there).
type PaymentService struct {
	db             *gorm.DB
	orderRepo      repositories.OrderRepository
	fulfillmentSvc *FulfillmentService
	coreAPIClient  CoreAPIClient
}

func NewPaymentService(db *gorm.DB, orderRepo repositories.OrderRepository, fulfillmentSvc *FulfillmentService, coreAPIClient CoreAPIClient) *PaymentService {
	return &PaymentService{db: db, orderRepo: orderRepo, fulfillmentSvc: fulfillmentSvc, coreAPIClient: coreAPIClient}
}

// ProcessNotification verifies the notification against the Midtrans API,
// persists the mapped statuses and fires the status-transition pipeline.
func (s *PaymentService) ProcessNotification(ctx context.Context, payload MidtransNotificationPayload) (*models.Order, error) {
	log.Printf("INFO: PaymentService: notification for OrderCode %s, status %s/%s", payload.OrderID, payload.TransactionStatus, payload.FraudStatus)

	status, midtransErr := s.coreAPIClient.CheckTransaction(payload.OrderID)
	if midtransErr != nil {
		return nil, fmt.Errorf("failed to verify transaction with Midtrans: %w", midtransErr.RawError)
	}
	if status == nil {
		return nil, errors.New("invalid transaction status from Midtrans API (nil response)")
	}
	if status.TransactionStatus != payload.TransactionStatus || status.FraudStatus != payload.FraudStatus {
		log.Printf("WARNING: PaymentService: status mismatch for %s. API: %s/%s, notification: %s/%s. Using API status.",
			payload.OrderID, status.TransactionStatus, status.FraudStatus, payload.TransactionStatus, payload.FraudStatus)
	}

	order, err := s.orderRepo.FindByCode(ctx, payload.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order lookup failed: %w", err)
	}
	if order == nil {
		return nil, errors.New("order not found")
	}

	if order.OrderStatus == models.OrderStatusDelivered || order.OrderStatus == models.OrderStatusCancelled {
		log.Printf("INFO: PaymentService: order %s already in final status %s, skipping", order.ID, order.OrderStatus)
		return order, nil
	}

	var newPaymentStatus, newOrderStatus string
	switch status.TransactionStatus {
	case "capture", "settlement":
		if status.FraudStatus == "accept" {
			newPaymentStatus = models.PaymentStatusPaid
			newOrderStatus = models.OrderStatusProcessing
		} else {
			newPaymentStatus = models.PaymentStatusFailed
			newOrderStatus = models.OrderStatusCancelled
		}
	case "pending":
		newPaymentStatus = models.PaymentStatusPending
		newOrderStatus = models.OrderStatusPending
	case "deny", "expire", "cancel":
		newPaymentStatus = models.PaymentStatusFailed
		newOrderStatus = models.OrderStatusCancelled
	case "refund", "partial_refund":
		newPaymentStatus = models.PaymentStatusRefunded
		newOrderStatus = models.OrderStatusCancelled
	default:
		return nil, fmt.Errorf("unhandled transaction status %q", status.TransactionStatus)
	}

	oldOrderStatus := order.OrderStatus

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.UpdateStatuses(ctx, tx, order.ID, newPaymentStatus, newOrderStatus)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}

	order.PaymentStatus = newPaymentStatus
	order.OrderStatus = newOrderStatus

	if err := s.fulfillmentSvc.HandleStatusChange(ctx, order, oldOrderStatus); err != nil {
		log.Printf("ERROR: PaymentService: fulfillment pipeline for order %s: %v", order.ID, err)
	}

	log.Printf("INFO: PaymentService: order %s updated to %s/%s", order.ID, newPaymentStatus, newOrderStatus)
	return order, nil
}
