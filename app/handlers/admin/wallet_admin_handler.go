package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/shopspring/decimal"
)

func (h *AdminHandler) GetWithdrawalsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statusFilter := r.URL.Query().Get("filter")
	withdrawals, err := h.withdrawalRepo.GetAll(ctx, statusFilter)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetWithdrawalsPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load withdrawals."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/withdrawals/list", map[string]interface{}{
		"Title":       "Withdrawals",
		"Withdrawals": withdrawals,
		"Filter":      statusFilter,
	})
}

func (h *AdminHandler) ApproveWithdrawalPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	withdrawalID := mux.Vars(r)["id"]
	remarks := r.FormValue("remarks")

	if err := h.walletSvc.Approve(ctx, withdrawalID, remarks); err != nil {
		if errors.Is(err, services.ErrWithdrawalNotPending) {
			http.Redirect(w, r, "/admin/withdrawals?status=error&message="+url.QueryEscape("Withdrawal is no longer pending."), http.StatusSeeOther)
			return
		}
		log.Printf("ERROR: AdminHandler.ApproveWithdrawalPost: withdrawal %s: %v", withdrawalID, err)
		http.Redirect(w, r, "/admin/withdrawals?status=error&message="+url.QueryEscape("Failed to approve withdrawal."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/withdrawals?status=success&message="+url.QueryEscape("Withdrawal approved."), http.StatusSeeOther)
}

// RejectWithdrawalPost refunds the pre-debited amount back to the user's
// balance and records the compensating ledger entry.
func (h *AdminHandler) RejectWithdrawalPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	withdrawalID := mux.Vars(r)["id"]
	reason := r.FormValue("reason")
	if reason == "" {
		reason = "Rejected by admin"
	}

	if err := h.walletSvc.Reject(ctx, withdrawalID, reason); err != nil {
		if errors.Is(err, services.ErrWithdrawalNotPending) {
			http.Redirect(w, r, "/admin/withdrawals?status=error&message="+url.QueryEscape("Withdrawal is no longer pending."), http.StatusSeeOther)
			return
		}
		log.Printf("ERROR: AdminHandler.RejectWithdrawalPost: withdrawal %s: %v", withdrawalID, err)
		http.Redirect(w, r, "/admin/withdrawals?status=error&message="+url.QueryEscape("Failed to reject withdrawal."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/withdrawals?status=success&message="+url.QueryEscape("Withdrawal rejected and amount refunded."), http.StatusSeeOther)
}

// AdjustBalancePost applies a manual credit or debit to a user's wallet,
// always paired with a ledger entry.
func (h *AdminHandler) AdjustBalancePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.FormValue("user_id")
	txType := r.FormValue("type")
	remarks := r.FormValue("remarks")

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		http.Redirect(w, r, "/admin/users?status=error&message="+url.QueryEscape("Invalid amount."), http.StatusSeeOther)
		return
	}
	if txType != models.TransactionTypeIn && txType != models.TransactionTypeOut {
		http.Redirect(w, r, "/admin/users?status=error&message="+url.QueryEscape("Invalid adjustment type."), http.StatusSeeOther)
		return
	}

	if err := h.walletSvc.Adjust(ctx, userID, amount, txType, remarks); err != nil {
		if errors.Is(err, services.ErrNegativeBalance) {
			http.Redirect(w, r, "/admin/users?status=error&message="+url.QueryEscape("Adjustment would drive the balance negative."), http.StatusSeeOther)
			return
		}
		log.Printf("ERROR: AdminHandler.AdjustBalancePost: user %s: %v", userID, err)
		http.Redirect(w, r, "/admin/users?status=error&message="+url.QueryEscape("Failed to adjust balance."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/users?status=success&message="+url.QueryEscape("Balance adjusted."), http.StatusSeeOther)
}

func (h *AdminHandler) GetTransactionsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, total, err := h.txRepo.GetAll(ctx, 50, 0)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetTransactionsPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load transactions."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/transactions/list", map[string]interface{}{
		"Title":        "Transactions",
		"Transactions": transactions,
		"Total":        total,
	})
}
