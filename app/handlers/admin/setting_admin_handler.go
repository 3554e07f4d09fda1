package admin

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/shopspring/decimal"
)

func (h *AdminHandler) GetSettingsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	setting, err := h.settingRepo.Get(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetSettingsPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load settings."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/settings/index", map[string]interface{}{
		"Title":   "Settings",
		"Setting": setting,
	})
}

func (h *AdminHandler) UpdateSettingsPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	setting, err := h.settingRepo.Get(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.UpdateSettingsPost: load settings: %v", err)
		http.Redirect(w, r, "/admin/settings?status=error&message="+url.QueryEscape("Failed to load settings."), http.StatusSeeOther)
		return
	}

	if v, err := decimal.NewFromString(r.FormValue("sale_commission")); err == nil && !v.IsNegative() {
		setting.SaleCommission = v
	}
	if mode := r.FormValue("commission_mode"); mode == models.CommissionModeGlobal || mode == models.CommissionModeCampaign {
		setting.CommissionMode = mode
	}
	if v, err := strconv.Atoi(r.FormValue("low_stock_threshold")); err == nil && v >= 0 {
		setting.LowStockThreshold = v
	}
	setting.IsWithdrawal = r.FormValue("is_withdrawal") == "on"
	setting.ActiveReferralSystem = r.FormValue("active_referral_system") == "on"
	if v, err := decimal.NewFromString(r.FormValue("min_withdrawal")); err == nil && !v.IsNegative() {
		setting.MinWithdrawal = v
	}
	if v, err := decimal.NewFromString(r.FormValue("max_withdrawal")); err == nil && !v.IsNegative() {
		setting.MaxWithdrawal = v
	}

	if err := h.settingRepo.Update(ctx, setting); err != nil {
		log.Printf("ERROR: AdminHandler.UpdateSettingsPost: %v", err)
		http.Redirect(w, r, "/admin/settings?status=error&message="+url.QueryEscape("Failed to save settings."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/settings?status=success&message="+url.QueryEscape("Settings saved."), http.StatusSeeOther)
}
