package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient product stock")

// InsufficientStockError carries the quantities involved in a failed
// deduction. It unwraps to ErrInsufficientStock for errors.Is checks.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d", e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// StockService is the authoritative read/mutate path for product quantities,
// optionally scoped to a variant combination. A combination key that does not
// exist in the product's schema silently falls back to the scalar stock
// field; order items store empty or stale keys and rely on this.
//
// Each mutation wraps its read-decide-write in one database transaction.
// There is no row-level locking on top of that; two requests deducting the
// same product concurrently can interleave (known gap, see DESIGN.md).
type StockService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepository
}

func NewStockService(db *gorm.DB, productRepo repositories.ProductRepository) *StockService {
	return &StockService{db: db, productRepo: productRepo}
}

// ValidateAvailability reports whether the requested quantity is available
// and the quantity currently on hand. Pure read; the answer can be stale by
// the time a deduction runs, which re-checks inside its own transaction.
func (s *StockService) ValidateAvailability(product *models.Product, qty int, variantKey string) (bool, int) {
	available := product.VariantStock(variantKey)
	return available >= qty, available
}

// Deduct decrements stock for the product (or its variant combination),
// failing with InsufficientStockError when the re-read quantity is short.
func (s *StockService) Deduct(ctx context.Context, productID string, qty int, variantKey string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByIDTx(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("failed to load product %s: %w", productID, err)
		}
		if product == nil {
			return fmt.Errorf("product %s not found", productID)
		}

		if combo, ok := product.Combination(variantKey); ok {
			if combo.Stock < qty {
				return &InsufficientStockError{ProductName: product.Name, Available: combo.Stock, Requested: qty}
			}
			combo.Stock -= qty
			product.Variants.Combinations[variantKey] = combo
			return s.productRepo.SaveTx(ctx, tx, product)
		}

		if product.Stock < qty {
			return &InsufficientStockError{ProductName: product.Name, Available: product.Stock, Requested: qty}
		}
		product.Stock -= qty
		return s.productRepo.SaveTx(ctx, tx, product)
	})
}

// Add increments stock, used for cancellation restock and manual restocking.
func (s *StockService) Add(ctx context.Context, productID string, qty int, variantKey string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByIDTx(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("failed to load product %s: %w", productID, err)
		}
		if product == nil {
			return fmt.Errorf("product %s not found", productID)
		}

		if combo, ok := product.Combination(variantKey); ok {
			combo.Stock += qty
			product.Variants.Combinations[variantKey] = combo
			return s.productRepo.SaveTx(ctx, tx, product)
		}

		product.Stock += qty
		return s.productRepo.SaveTx(ctx, tx, product)
	})
}

// Adjust sets the quantity to an absolute value. Administrative use.
func (s *StockService) Adjust(ctx context.Context, productID string, newQty int, variantKey string) error {
	if newQty < 0 {
		return fmt.Errorf("stock cannot be negative: %d", newQty)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByIDTx(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("failed to load product %s: %w", productID, err)
		}
		if product == nil {
			return fmt.Errorf("product %s not found", productID)
		}

		if combo, ok := product.Combination(variantKey); ok {
			combo.Stock = newQty
			product.Variants.Combinations[variantKey] = combo
			return s.productRepo.SaveTx(ctx, tx, product)
		}

		product.Stock = newQty
		return s.productRepo.SaveTx(ctx, tx, product)
	})
}
