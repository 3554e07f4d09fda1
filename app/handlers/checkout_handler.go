package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	render      *render.Render
	addressRepo repositories.AddressRepository
	cartSvc     *services.CartService
	checkoutSvc *services.CheckoutService
}

func NewCheckoutHandler(r *render.Render, addressRepo repositories.AddressRepository, cartSvc *services.CartService, checkoutSvc *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{render: r, addressRepo: addressRepo, cartSvc: cartSvc, checkoutSvc: checkoutSvc}
}

func (h *CheckoutHandler) GetCheckoutPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	items := h.cartSvc.Items(r)
	if len(items) == 0 {
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
		return
	}

	addresses, err := h.addressRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: CheckoutHandler.GetCheckoutPage: %v", err)
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Failed to load checkout page."), http.StatusSeeOther)
		return
	}

	total := h.cartSvc.Total(items)
	h.render.HTML(w, http.StatusOK, "site/checkout/index", map[string]interface{}{
		"Title":      "Checkout",
		"Items":      items,
		"Addresses":  addresses,
		"Total":      total,
		"TotalLabel": helpers.FormatMoney(total),
	})
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	items := h.cartSvc.Items(r)
	if len(items) == 0 {
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
		return
	}

	billingAddressID := r.FormValue("billing_address_id")
	shippingAddressID := r.FormValue("shipping_address_id")
	if shippingAddressID == "" {
		shippingAddressID = billingAddressID
	}
	if billingAddressID == "" {
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Please choose a billing address."), http.StatusSeeOther)
		return
	}

	shippingCost, err := decimal.NewFromString(r.FormValue("shipping_cost"))
	if err != nil {
		shippingCost = decimal.Zero
	}

	order, paymentURL, err := h.checkoutSvc.PlaceOrder(ctx, userID, billingAddressID, shippingAddressID, items, shippingCost)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Some items are out of stock."), http.StatusSeeOther)
			return
		}
		log.Printf("ERROR: CheckoutHandler.PlaceOrder: %v", err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Failed to place order."), http.StatusSeeOther)
		return
	}

	if err := h.cartSvc.Clear(w, r); err != nil {
		log.Printf("WARNING: CheckoutHandler.PlaceOrder: failed to clear cart: %v", err)
	}

	if paymentURL != "" {
		http.Redirect(w, r, paymentURL, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/orders/"+order.ID+"?status=success&message="+url.QueryEscape("Order placed. Awaiting payment."), http.StatusSeeOther)
}
