package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render     *render.Render
	orderRepo  repositories.OrderRepository
	paymentSvc *services.PaymentService
}

func NewOrderHandler(r *render.Render, orderRepo repositories.OrderRepository, paymentSvc *services.PaymentService) *OrderHandler {
	return &OrderHandler{render: r, orderRepo: orderRepo, paymentSvc: paymentSvc}
}

func (h *OrderHandler) OrderListGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	orders, err := h.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: OrderHandler.OrderListGet: %v", err)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, http.StatusOK, "site/orders/list", map[string]interface{}{
		"Title":  "My Orders",
		"Orders": orders,
	})
}

func (h *OrderHandler) OrderDetailGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	order, err := h.orderRepo.GetByIDWithItems(ctx, mux.Vars(r)["id"])
	if err != nil {
		log.Printf("ERROR: OrderHandler.OrderDetailGet: %v", err)
		http.Error(w, "failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil || order.UserID != userID {
		http.NotFound(w, r)
		return
	}

	h.render.HTML(w, http.StatusOK, "site/orders/detail", map[string]interface{}{
		"Title":      "Order " + order.OrderCode,
		"Order":      order,
		"TotalLabel": helpers.FormatMoney(order.GrandTotal),
	})
}

// MidtransNotificationPost receives payment gateway callbacks. The payload is
// verified against the gateway before any status is trusted.
func (h *OrderHandler) MidtransNotificationPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload services.MidtransNotificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("ERROR: MidtransNotificationPost: failed to decode body: %v", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if _, err := h.paymentSvc.ProcessNotification(ctx, payload); err != nil {
		log.Printf("ERROR: MidtransNotificationPost: order %s: %v", payload.OrderID, err)
		http.Error(w, "failed to process notification", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Notification received and processed"))
}
