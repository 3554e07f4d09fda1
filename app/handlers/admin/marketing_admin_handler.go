package admin

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
)

type campaignForm struct {
	Name            string `validate:"required"`
	ProductID       string `validate:"required,uuid4"`
	CommissionType  string `validate:"required,oneof=flat percentage"`
	CommissionValue string `validate:"required"`
}

func (h *AdminHandler) GetCampaignsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaigns, err := h.campaignRepo.GetActive(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetCampaignsPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load campaigns."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/campaigns/list", map[string]interface{}{
		"Title":     "Campaigns",
		"Campaigns": campaigns,
	})
}

func (h *AdminHandler) CreateCampaignPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form := campaignForm{
		Name:            r.FormValue("name"),
		ProductID:       r.FormValue("product_id"),
		CommissionType:  r.FormValue("commission_type"),
		CommissionValue: r.FormValue("commission_value"),
	}
	if err := h.validator.Struct(form); err != nil {
		http.Redirect(w, r, "/admin/campaigns?status=error&message="+url.QueryEscape("Please fill in all campaign fields."), http.StatusSeeOther)
		return
	}

	value, err := decimal.NewFromString(form.CommissionValue)
	if err != nil || value.IsNegative() {
		http.Redirect(w, r, "/admin/campaigns?status=error&message="+url.QueryEscape("Invalid commission value."), http.StatusSeeOther)
		return
	}

	product, err := h.productRepo.GetByID(ctx, form.ProductID)
	if err != nil || product == nil {
		http.Redirect(w, r, "/admin/campaigns?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	campaign := models.Campaign{
		Name:            form.Name,
		Description:     r.FormValue("description"),
		ProductID:       form.ProductID,
		CommissionType:  form.CommissionType,
		CommissionValue: value,
		VideoLink:       r.FormValue("video_link"),
		IsActive:        true,
	}
	if err := h.campaignRepo.Create(ctx, &campaign); err != nil {
		log.Printf("ERROR: AdminHandler.CreateCampaignPost: %v", err)
		http.Redirect(w, r, "/admin/campaigns?status=error&message="+url.QueryEscape("Failed to create campaign."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/campaigns?status=success&message="+url.QueryEscape("Campaign created."), http.StatusSeeOther)
}

func (h *AdminHandler) ToggleCampaignPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaign, err := h.campaignRepo.GetByID(ctx, mux.Vars(r)["id"])
	if err != nil || campaign == nil {
		http.Redirect(w, r, "/admin/campaigns?status=error&message="+url.QueryEscape("Campaign not found."), http.StatusSeeOther)
		return
	}

	campaign.IsActive = !campaign.IsActive
	if err := h.campaignRepo.Update(ctx, campaign); err != nil {
		log.Printf("ERROR: AdminHandler.ToggleCampaignPost: %v", err)
		http.Redirect(w, r, "/admin/campaigns?status=error&message="+url.QueryEscape("Failed to update campaign."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/campaigns?status=success&message="+url.QueryEscape("Campaign updated."), http.StatusSeeOther)
}

func (h *AdminHandler) GetFlashDealsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deals, err := h.flashDealRepo.GetRunning(ctx, time.Now())
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetFlashDealsPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load flash deals."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/flash_deals/list", map[string]interface{}{
		"Title": "Flash Deals",
		"Deals": deals,
	})
}

// CreateFlashDealPost creates a time-windowed discount covering the selected
// products. While running, the deal overrides product and variant discounts.
func (h *AdminHandler) CreateFlashDealPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	title := r.FormValue("title")
	discountType := r.FormValue("discount_type")
	if title == "" || (discountType != models.DiscountTypeFlat && discountType != models.DiscountTypePercentage) {
		http.Redirect(w, r, "/admin/flash-deals?status=error&message="+url.QueryEscape("Title and discount type are required."), http.StatusSeeOther)
		return
	}

	discount, err := decimal.NewFromString(r.FormValue("discount"))
	if err != nil || discount.IsNegative() {
		http.Redirect(w, r, "/admin/flash-deals?status=error&message="+url.QueryEscape("Invalid discount value."), http.StatusSeeOther)
		return
	}

	startTime, errStart := time.Parse("2006-01-02T15:04", r.FormValue("start_time"))
	endTime, errEnd := time.Parse("2006-01-02T15:04", r.FormValue("end_time"))
	if errStart != nil || errEnd != nil || !endTime.After(startTime) {
		http.Redirect(w, r, "/admin/flash-deals?status=error&message="+url.QueryEscape("Invalid deal window."), http.StatusSeeOther)
		return
	}

	var products []models.Product
	for _, productID := range r.Form["product_ids"] {
		product, err := h.productRepo.GetByID(ctx, productID)
		if err != nil || product == nil {
			continue
		}
		products = append(products, *product)
	}
	if len(products) == 0 {
		http.Redirect(w, r, "/admin/flash-deals?status=error&message="+url.QueryEscape("Pick at least one product."), http.StatusSeeOther)
		return
	}

	deal := models.FlashDeal{
		Title:        title,
		DiscountType: discountType,
		Discount:     discount,
		StartTime:    startTime,
		EndTime:      endTime,
		IsActive:     true,
		Products:     products,
	}
	if err := h.flashDealRepo.Create(ctx, &deal); err != nil {
		log.Printf("ERROR: AdminHandler.CreateFlashDealPost: %v", err)
		http.Redirect(w, r, "/admin/flash-deals?status=error&message="+url.QueryEscape("Failed to create flash deal."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/flash-deals?status=success&message="+url.QueryEscape("Flash deal created."), http.StatusSeeOther)
}
