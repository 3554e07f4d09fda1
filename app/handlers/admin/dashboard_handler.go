package admin

import (
	"log"
	"net/http"

	"github.com/prabeshkharel/earnkart/app/models"
)

func (h *AdminHandler) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orderRepo.GetAllOrders(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetDashboardPage: orders: %v", err)
	}

	pendingWithdrawals, err := h.withdrawalRepo.GetAll(ctx, models.WithdrawalStatusPending)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetDashboardPage: withdrawals: %v", err)
	}

	setting, err := h.settingRepo.Get(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetDashboardPage: settings: %v", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	lowStock, err := h.productRepo.GetLowStock(ctx, setting.LowStockThreshold)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetDashboardPage: low stock: %v", err)
	}

	recent := orders
	if len(recent) > 10 {
		recent = recent[:10]
	}

	h.render.HTML(w, http.StatusOK, "admin/dashboard", map[string]interface{}{
		"Title":              "Dashboard",
		"OrderCount":         len(orders),
		"RecentOrders":       recent,
		"PendingWithdrawals": pendingWithdrawals,
		"LowStockProducts":   lowStock,
	})
}
