package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	render        *render.Render
	productRepo   repositories.ProductRepository
	categoryRepo  repositories.CategoryRepository
	flashDealRepo repositories.FlashDealRepository
}

func NewHomeHandler(r *render.Render, productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, flashDealRepo repositories.FlashDealRepository) *HomeHandler {
	return &HomeHandler{render: r, productRepo: productRepo, categoryRepo: categoryRepo, flashDealRepo: flashDealRepo}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	featured, err := h.productRepo.GetFeaturedProducts(ctx, 8)
	if err != nil {
		log.Printf("ERROR: HomeHandler.Home: featured products: %v", err)
	}

	deals, err := h.flashDealRepo.GetRunning(ctx, time.Now())
	if err != nil {
		log.Printf("ERROR: HomeHandler.Home: flash deals: %v", err)
	}

	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: HomeHandler.Home: categories: %v", err)
	}

	h.render.HTML(w, http.StatusOK, "site/home", map[string]interface{}{
		"Title":      "EarnKart",
		"Featured":   featured,
		"Categories": categories,
		"FlashDeals": deals,
	})
}
