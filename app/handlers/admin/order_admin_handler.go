package admin

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/prabeshkharel/earnkart/app/models"
)

var orderStatusOptions = []string{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

var paymentStatusOptions = []string{
	models.PaymentStatusPending,
	models.PaymentStatusPaid,
	models.PaymentStatusFailed,
	models.PaymentStatusRefunded,
}

func (h *AdminHandler) GetOrdersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orderRepo.GetAllOrders(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetOrdersPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load orders."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/orders/list", map[string]interface{}{
		"Title":                "Orders",
		"Orders":               orders,
		"OrderStatusOptions":   orderStatusOptions,
		"PaymentStatusOptions": paymentStatusOptions,
	})
}

// GetOrderDetailPage shows the order with per-item reward previews so the
// admin can see what each influencer will be paid once the order is delivered.
func (h *AdminHandler) GetOrderDetailPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.orderRepo.GetByIDWithItems(ctx, mux.Vars(r)["id"])
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetOrderDetailPage: %v", err)
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Failed to load order."), http.StatusSeeOther)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	rewards, err := h.orderSvc.RewardPreviews(ctx, order)
	if err != nil {
		log.Printf("WARNING: AdminHandler.GetOrderDetailPage: reward previews for order %s: %v", order.ID, err)
	}

	h.render.HTML(w, http.StatusOK, "admin/orders/detail", map[string]interface{}{
		"Title":                "Order " + order.OrderCode,
		"Order":                order,
		"Rewards":              rewards,
		"OrderStatusOptions":   orderStatusOptions,
		"PaymentStatusOptions": paymentStatusOptions,
	})
}

// UpdateOrderStatusPost persists the new statuses and runs the fulfillment
// side effects for the transition (commission credit, stock deduction or
// restoration).
func (h *AdminHandler) UpdateOrderStatusPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID := r.FormValue("order_id")
	paymentStatus := r.FormValue("payment_status")
	orderStatus := r.FormValue("order_status")

	if orderID == "" || paymentStatus == "" || orderStatus == "" {
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Order id and statuses are required."), http.StatusSeeOther)
		return
	}
	if !validStatus(orderStatus, orderStatusOptions) || !validStatus(paymentStatus, paymentStatusOptions) {
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Unknown status value."), http.StatusSeeOther)
		return
	}

	if _, err := h.orderSvc.UpdateStatuses(ctx, orderID, paymentStatus, orderStatus); err != nil {
		log.Printf("ERROR: AdminHandler.UpdateOrderStatusPost: order %s: %v", orderID, err)
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Failed to update order status."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/orders/"+orderID+"?status=success&message="+url.QueryEscape("Order status updated."), http.StatusSeeOther)
}

func validStatus(value string, options []string) bool {
	for _, opt := range options {
		if value == opt {
			return true
		}
	}
	return false
}
