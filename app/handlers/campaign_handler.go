package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/unrolled/render"
)

type CampaignHandler struct {
	render       *render.Render
	campaignRepo repositories.CampaignRepository
	userRepo     repositories.UserRepository
	productRepo  repositories.ProductRepository
	baseURL      string
}

func NewCampaignHandler(r *render.Render, campaignRepo repositories.CampaignRepository, userRepo repositories.UserRepository, productRepo repositories.ProductRepository, baseURL string) *CampaignHandler {
	return &CampaignHandler{render: r, campaignRepo: campaignRepo, userRepo: userRepo, productRepo: productRepo, baseURL: baseURL}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaigns, err := h.campaignRepo.GetActive(ctx)
	if err != nil {
		log.Printf("ERROR: CampaignHandler.List: %v", err)
		http.Error(w, "failed to load campaigns", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, http.StatusOK, "site/campaigns/list", map[string]interface{}{
		"Title":     "Active Campaigns",
		"Campaigns": campaigns,
	})
}

// ReferralLink builds the shareable product link for the signed-in
// influencer. Campaign links carry both the earn code and the campaign id so
// the commission resolves against the campaign terms.
func (h *CampaignHandler) ReferralLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("ERROR: CampaignHandler.ReferralLink: load user %s: %v", userID, err)
		http.Error(w, "failed to build referral link", http.StatusInternalServerError)
		return
	}
	if !user.CanEarn() || user.EarnCode == nil {
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("Referral links require an approved influencer account."), http.StatusSeeOther)
		return
	}

	campaignID := mux.Vars(r)["id"]
	campaign, err := h.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		log.Printf("ERROR: CampaignHandler.ReferralLink: load campaign %s: %v", campaignID, err)
		http.Error(w, "failed to build referral link", http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.productRepo.GetByID(ctx, campaign.ProductID)
	if err != nil || product == nil {
		log.Printf("ERROR: CampaignHandler.ReferralLink: load product %s: %v", campaign.ProductID, err)
		http.Error(w, "failed to build referral link", http.StatusInternalServerError)
		return
	}

	link := fmt.Sprintf("%s/products/%s?earncode=%s&campaign=%s",
		h.baseURL, product.Slug, url.QueryEscape(*user.EarnCode), url.QueryEscape(campaign.ID))

	h.render.HTML(w, http.StatusOK, "site/campaigns/referral", map[string]interface{}{
		"Title":    "Referral Link",
		"Campaign": campaign,
		"Product":  product,
		"Link":     link,
	})
}
