package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/unrolled/render"
)

const productsPerPage = 12

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepository
	pricingSvc  *services.PricingService
	cartSvc     *services.CartService
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepository, pricingSvc *services.PricingService, cartSvc *services.CartService) *ProductHandler {
	return &ProductHandler{render: r, productRepo: productRepo, pricingSvc: pricingSvc, cartSvc: cartSvc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * productsPerPage

	keyword := r.URL.Query().Get("q")

	var (
		products []models.Product
		total    int64
		err      error
	)
	if keyword != "" {
		products, total, err = h.productRepo.SearchPaginated(ctx, keyword, productsPerPage, offset)
	} else {
		products, total, err = h.productRepo.GetPaginated(ctx, productsPerPage, offset)
	}
	if err != nil {
		log.Printf("ERROR: ProductHandler.List: %v", err)
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, http.StatusOK, "site/products/list", map[string]interface{}{
		"Title":    "Products",
		"Products": products,
		"Total":    total,
		"Page":     page,
		"Keyword":  keyword,
	})
}

// Detail renders a product page. Referral links carry ?earncode= and
// optionally &campaign=; the attribution is remembered in the session so it
// lands on cart items added afterwards.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ERROR: ProductHandler.Detail: %v", err)
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	if earnCode := r.URL.Query().Get("earncode"); earnCode != "" {
		campaignID := r.URL.Query().Get("campaign")
		if err := h.cartSvc.RememberAffiliate(w, r, earnCode, campaignID); err != nil {
			log.Printf("WARNING: ProductHandler.Detail: failed to remember affiliate: %v", err)
		}
	}

	h.render.HTML(w, http.StatusOK, "site/products/detail", map[string]interface{}{
		"Title":        product.Name,
		"Product":      product,
		"DisplayPrice": helpers.FormatMoney(h.pricingSvc.DisplayPrice(ctx, product)),
	})
}
