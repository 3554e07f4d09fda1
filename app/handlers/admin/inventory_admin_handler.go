package admin

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// GetLowStockPage lists products whose remaining stock sits at or below the
// configured threshold.
func (h *AdminHandler) GetLowStockPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	setting, err := h.settingRepo.Get(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetLowStockPage: load settings: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load settings."), http.StatusSeeOther)
		return
	}

	products, err := h.productRepo.GetLowStock(ctx, setting.LowStockThreshold)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetLowStockPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load low stock report."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/inventory/low_stock", map[string]interface{}{
		"Title":     "Low Stock",
		"Products":  products,
		"Threshold": setting.LowStockThreshold,
	})
}

// AdjustStockPost sets a product's stock, or one variant combination's stock,
// to an absolute quantity.
func (h *AdminHandler) AdjustStockPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.FormValue("product_id")
	variantKey := r.FormValue("variant_key")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 0 {
		http.Redirect(w, r, "/admin/inventory?status=error&message="+url.QueryEscape("Invalid stock quantity."), http.StatusSeeOther)
		return
	}

	if err := h.stockSvc.Adjust(ctx, productID, qty, variantKey); err != nil {
		log.Printf("ERROR: AdminHandler.AdjustStockPost: product %s: %v", productID, err)
		http.Redirect(w, r, "/admin/inventory?status=error&message="+url.QueryEscape("Failed to adjust stock."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/inventory?status=success&message="+url.QueryEscape("Stock adjusted."), http.StatusSeeOther)
}
