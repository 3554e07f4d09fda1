package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render  *render.Render
	cartSvc *services.CartService
}

func NewCartHandler(r *render.Render, cartSvc *services.CartService) *CartHandler {
	return &CartHandler{render: r, cartSvc: cartSvc}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	items := h.cartSvc.Items(r)
	total := h.cartSvc.Total(items)

	h.render.HTML(w, http.StatusOK, "site/carts/index", map[string]interface{}{
		"Title":      "Shopping Cart",
		"Items":      items,
		"Total":      total,
		"TotalLabel": helpers.FormatMoney(total),
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.FormValue("product_id")
	variantKey := r.FormValue("variant_key")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	if productID == "" {
		http.Redirect(w, r, "/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	if err := h.cartSvc.AddItem(ctx, w, r, productID, variantKey, qty); err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Not enough stock for the requested quantity."), http.StatusSeeOther)
			return
		}
		log.Printf("ERROR: CartHandler.AddItem: %v", err)
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Failed to add item to cart."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/carts?status=success&message="+url.QueryEscape("Item added to cart."), http.StatusSeeOther)
}

func (h *CartHandler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.FormValue("product_id")
	variantKey := r.FormValue("variant_key")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 0 {
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Invalid quantity."), http.StatusSeeOther)
		return
	}

	if err := h.cartSvc.UpdateQty(ctx, w, r, productID, variantKey, qty); err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Not enough stock for the requested quantity."), http.StatusSeeOther)
			return
		}
		log.Printf("ERROR: CartHandler.UpdateQty: %v", err)
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Failed to update cart."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/carts", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.Clear(w, r); err != nil {
		log.Printf("ERROR: CartHandler.Clear: %v", err)
	}
	http.Redirect(w, r, "/carts", http.StatusSeeOther)
}
