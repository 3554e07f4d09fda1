package admin

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

func (h *AdminHandler) GetInfluencersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	influencers, err := h.userRepo.GetInfluencers(ctx)
	if err != nil {
		log.Printf("ERROR: AdminHandler.GetInfluencersPage: %v", err)
		http.Redirect(w, r, "/admin/dashboard?status=error&message="+url.QueryEscape("Failed to load influencers."), http.StatusSeeOther)
		return
	}

	h.render.HTML(w, http.StatusOK, "admin/users/influencers", map[string]interface{}{
		"Title":       "Influencers",
		"Influencers": influencers,
	})
}

// ApproveKycPost approves a pending influencer application. The user gets a
// permanent earn code on first approval.
func (h *AdminHandler) ApproveKycPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := mux.Vars(r)["id"]
	user, err := h.influencerSvc.ApproveKyc(ctx, userID)
	if err != nil {
		log.Printf("ERROR: AdminHandler.ApproveKycPost: user %s: %v", userID, err)
		http.Redirect(w, r, "/admin/influencers?status=error&message="+url.QueryEscape("Failed to approve application."), http.StatusSeeOther)
		return
	}

	log.Printf("INFO: AdminHandler.ApproveKycPost: approved %s, earn code %s", user.ID, *user.EarnCode)
	http.Redirect(w, r, "/admin/influencers?status=success&message="+url.QueryEscape("Application approved."), http.StatusSeeOther)
}

func (h *AdminHandler) RejectKycPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := mux.Vars(r)["id"]
	reason := r.FormValue("reason")
	if reason == "" {
		reason = "Application rejected"
	}

	if _, err := h.influencerSvc.RejectKyc(ctx, userID, reason); err != nil {
		log.Printf("ERROR: AdminHandler.RejectKycPost: user %s: %v", userID, err)
		http.Redirect(w, r, "/admin/influencers?status=error&message="+url.QueryEscape("Failed to reject application."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/influencers?status=success&message="+url.QueryEscape("Application rejected."), http.StatusSeeOther)
}
