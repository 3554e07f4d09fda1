package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/shopspring/decimal"
)

const (
	cartSessionName = "earnkart-cart"
	cartSessionKey  = "items"

	// affiliateSessionKey holds the earn code captured from a referral link
	// so it can be snapshotted onto cart items added afterwards.
	affiliateSessionKey  = "affiliate_earn_code"
	affiliateCampaignKey = "affiliate_campaign_id"
)

// CartItem is one line of the session cart. Price is the resolved price at
// the time the item was added; EarnCode and CampaignID carry the referral
// attribution that later lands on the order item.
type CartItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSku  string          `json:"product_sku"`
	VariantKey  string          `json:"variant_key"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	EarnCode    string          `json:"earn_code"`
	CampaignID  string          `json:"campaign_id"`
}

func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Qty)))
}

// CartService keeps the cart in the visitor's session rather than the
// database; the cart is scratch state until checkout snapshots it into an
// order.
type CartService struct {
	store       sessions.Store
	productRepo repositories.ProductRepository
	pricingSvc  *PricingService
	stockSvc    *StockService
}

func NewCartService(store sessions.Store, productRepo repositories.ProductRepository, pricingSvc *PricingService, stockSvc *StockService) *CartService {
	return &CartService{store: store, productRepo: productRepo, pricingSvc: pricingSvc, stockSvc: stockSvc}
}

// RememberAffiliate stores referral attribution from a visited link
// (?earncode=..&campaign=..) for the rest of the session.
func (s *CartService) RememberAffiliate(w http.ResponseWriter, r *http.Request, earnCode, campaignID string) error {
	session, err := s.store.Get(r, cartSessionName)
	if err != nil {
		return fmt.Errorf("failed to open cart session: %w", err)
	}
	session.Values[affiliateSessionKey] = earnCode
	session.Values[affiliateCampaignKey] = campaignID
	return session.Save(r, w)
}

// Items decodes the cart from the session. A missing or corrupt cart is an
// empty cart, never an error surfaced to the shopper.
func (s *CartService) Items(r *http.Request) []CartItem {
	session, err := s.store.Get(r, cartSessionName)
	if err != nil {
		return nil
	}
	raw, ok := session.Values[cartSessionKey].(string)
	if !ok || raw == "" {
		return nil
	}
	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// AddItem puts a product (optionally a specific variant combination) into
// the cart, validating against current stock. Attribution captured earlier
// in the session is preserved on existing lines and applied to new ones.
func (s *CartService) AddItem(ctx context.Context, w http.ResponseWriter, r *http.Request, productID, variantKey string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product %s not found", productID)
	}

	session, err := s.store.Get(r, cartSessionName)
	if err != nil {
		return fmt.Errorf("failed to open cart session: %w", err)
	}
	earnCode, _ := session.Values[affiliateSessionKey].(string)
	campaignID, _ := session.Values[affiliateCampaignKey].(string)

	items := s.Items(r)
	newQty := qty
	for _, item := range items {
		if item.ProductID == productID && item.VariantKey == variantKey {
			newQty += item.Qty
		}
	}

	if ok, available := s.stockSvc.ValidateAvailability(product, newQty, variantKey); !ok {
		return &InsufficientStockError{ProductName: product.Name, Available: available, Requested: newQty}
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID && items[i].VariantKey == variantKey {
			items[i].Qty = newQty
			if items[i].EarnCode == "" && earnCode != "" {
				items[i].EarnCode = earnCode
				items[i].CampaignID = campaignID
			}
			found = true
			break
		}
	}
	if !found {
		items = append(items, CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSku:  product.Sku,
			VariantKey:  variantKey,
			Qty:         qty,
			Price:       s.pricingSvc.FinalPrice(ctx, product, variantKey),
			EarnCode:    earnCode,
			CampaignID:  campaignID,
		})
	}

	return s.save(w, r, session, items)
}

// UpdateQty sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQty(ctx context.Context, w http.ResponseWriter, r *http.Request, productID, variantKey string, qty int) error {
	session, err := s.store.Get(r, cartSessionName)
	if err != nil {
		return fmt.Errorf("failed to open cart session: %w", err)
	}

	items := s.Items(r)
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID || item.VariantKey != variantKey {
			kept = append(kept, item)
			continue
		}
		if qty <= 0 {
			continue
		}
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil || product == nil {
			return fmt.Errorf("product %s not found", productID)
		}
		if ok, available := s.stockSvc.ValidateAvailability(product, qty, variantKey); !ok {
			return &InsufficientStockError{ProductName: product.Name, Available: available, Requested: qty}
		}
		item.Qty = qty
		kept = append(kept, item)
	}

	return s.save(w, r, session, kept)
}

// Clear empties the cart, typically after a successful checkout.
func (s *CartService) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, cartSessionName)
	if err != nil {
		return fmt.Errorf("failed to open cart session: %w", err)
	}
	return s.save(w, r, session, nil)
}

// Total sums the line subtotals.
func (s *CartService) Total(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *CartService) save(w http.ResponseWriter, r *http.Request, session *sessions.Session, items []CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	session.Values[cartSessionKey] = string(raw)
	return session.Save(r, w)
}
