package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/models"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type WalletHandler struct {
	render         *render.Render
	userRepo       repositories.UserRepository
	txRepo         repositories.TransactionRepository
	withdrawalRepo repositories.WithdrawalRepository
	walletSvc      *services.WalletService
}

func NewWalletHandler(
	r *render.Render,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	walletSvc *services.WalletService,
) *WalletHandler {
	return &WalletHandler{
		render:         r,
		userRepo:       userRepo,
		txRepo:         txRepo,
		withdrawalRepo: withdrawalRepo,
		walletSvc:      walletSvc,
	}
}

// GetWalletPage shows the earning dashboard: balance, the transaction ledger
// and past withdrawal requests.
func (h *WalletHandler) GetWalletPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("ERROR: WalletHandler.GetWalletPage: load user %s: %v", userID, err)
		http.Error(w, "failed to load wallet", http.StatusInternalServerError)
		return
	}

	transactions, err := h.txRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: WalletHandler.GetWalletPage: load transactions: %v", err)
		http.Error(w, "failed to load wallet", http.StatusInternalServerError)
		return
	}

	withdrawals, err := h.withdrawalRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: WalletHandler.GetWalletPage: load withdrawals: %v", err)
		http.Error(w, "failed to load wallet", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, http.StatusOK, "site/wallet/index", map[string]interface{}{
		"Title":        "My Wallet",
		"User":         user,
		"BalanceLabel": helpers.FormatMoney(user.Balance),
		"Transactions": transactions,
		"Withdrawals":  withdrawals,
		"CanEarn":      user.CanEarn(),
	})
}

// RequestWithdrawalPost files a withdrawal for the signed-in influencer.
// Only KYC-approved influencers may withdraw.
func (h *WalletHandler) RequestWithdrawalPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("ERROR: WalletHandler.RequestWithdrawalPost: load user %s: %v", userID, err)
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("Failed to process withdrawal."), http.StatusSeeOther)
		return
	}
	if !user.CanEarn() {
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("Withdrawals require an approved influencer account."), http.StatusSeeOther)
		return
	}

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("Invalid amount."), http.StatusSeeOther)
		return
	}

	if _, err := h.walletSvc.RequestWithdrawal(ctx, userID, amount); err != nil {
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape(withdrawalErrorMessage(err)), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/wallet?status=success&message="+url.QueryEscape("Withdrawal request submitted."), http.StatusSeeOther)
}

// ApplyInfluencerPost submits a KYC application. The earn code is only
// generated later, when an admin approves the application.
func (h *WalletHandler) ApplyInfluencerPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := helpers.UserIDFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("ERROR: WalletHandler.ApplyInfluencerPost: load user %s: %v", userID, err)
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("Failed to submit application."), http.StatusSeeOther)
		return
	}
	if user.KycStatus == models.KycStatusPending || user.KycStatus == models.KycStatusApproved {
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("You already have an application on file."), http.StatusSeeOther)
		return
	}

	user.IsInfluencer = true
	user.KycStatus = models.KycStatusPending
	user.TiktokLink = r.FormValue("tiktok_link")
	user.InstagramLink = r.FormValue("instagram_link")
	user.YoutubeLink = r.FormValue("youtube_link")

	if err := h.userRepo.Update(ctx, user); err != nil {
		log.Printf("ERROR: WalletHandler.ApplyInfluencerPost: update user %s: %v", userID, err)
		http.Redirect(w, r, "/wallet?status=error&message="+url.QueryEscape("Failed to submit application."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/wallet?status=success&message="+url.QueryEscape("Application submitted for review."), http.StatusSeeOther)
}

func withdrawalErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrWithdrawalsDisabled):
		return "Withdrawals are currently disabled."
	case errors.Is(err, services.ErrWithdrawalBounds):
		return "Amount is outside the allowed withdrawal range."
	case errors.Is(err, services.ErrNegativeBalance):
		return "Insufficient balance."
	case errors.Is(err, services.ErrInvalidAmount):
		return "Invalid amount."
	default:
		log.Printf("ERROR: WalletHandler.RequestWithdrawalPost: %v", err)
		return "Failed to process withdrawal."
	}
}
