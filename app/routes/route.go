package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	gorillaSessions "github.com/gorilla/sessions"
	"github.com/prabeshkharel/earnkart/app/configs"
	"github.com/prabeshkharel/earnkart/app/handlers"
	"github.com/prabeshkharel/earnkart/app/handlers/admin"
	"github.com/prabeshkharel/earnkart/app/helpers"
	"github.com/prabeshkharel/earnkart/app/middlewares"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto the mux router.
// The session store carries both the auth session and the cart.
func NewRouter(db *gorm.DB, keys *configs.SessionKeys, baseURL string) http.Handler {
	router := mux.NewRouter()

	renderer := render.New(render.Options{
		Directory: "app/views",
		Layout:    "layout",
		Extensions: []string{
			".html",
		},
	})

	store := gorillaSessions.NewCookieStore(keys.AuthKey, keys.EncKey)
	store.Options = &gorillaSessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400 * 7,
	}

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	campaignRepo := repositories.NewCampaignRepository(db)
	flashDealRepo := repositories.NewFlashDealRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	stockSvc := services.NewStockService(db, productRepo)
	pricingSvc := services.NewPricingService(flashDealRepo)
	commissionSvc := services.NewCommissionService(userRepo, settingRepo)
	fulfillmentSvc := services.NewFulfillmentService(db, orderItemRepo, txRepo, userRepo, commissionSvc, stockSvc)
	walletSvc := services.NewWalletService(db, userRepo, txRepo, withdrawalRepo, settingRepo)
	cartSvc := services.NewCartService(store, productRepo, pricingSvc, stockSvc)
	checkoutSvc := services.NewCheckoutService(db, userRepo, addressRepo, orderRepo, orderItemRepo, productRepo, stockSvc, &configs.MidtransSnapClient)
	paymentSvc := services.NewPaymentService(db, orderRepo, fulfillmentSvc, &configs.MidtransCoreAPIClient)
	orderSvc := services.NewOrderService(db, orderRepo, commissionSvc, fulfillmentSvc)
	influencerSvc := services.NewInfluencerService(userRepo)

	homeHandler := handlers.NewHomeHandler(renderer, productRepo, categoryRepo, flashDealRepo)
	productHandler := handlers.NewProductHandler(renderer, productRepo, pricingSvc, cartSvc)
	cartHandler := handlers.NewCartHandler(renderer, cartSvc)
	checkoutHandler := handlers.NewCheckoutHandler(renderer, addressRepo, cartSvc, checkoutSvc)
	orderHandler := handlers.NewOrderHandler(renderer, orderRepo, paymentSvc)
	walletHandler := handlers.NewWalletHandler(renderer, userRepo, txRepo, withdrawalRepo, walletSvc)
	campaignHandler := handlers.NewCampaignHandler(renderer, campaignRepo, userRepo, productRepo, baseURL)
	authHandler := handlers.NewAuthHandler(renderer, store, db)

	adminHandler := admin.NewAdminHandler(
		renderer, helpers.Validate,
		productRepo, userRepo, orderRepo, withdrawalRepo, txRepo,
		campaignRepo, flashDealRepo, settingRepo,
		orderSvc, walletSvc, stockSvc, influencerSvc,
	)

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/products", productHandler.List).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")
	router.HandleFunc("/campaigns", campaignHandler.List).Methods("GET")

	router.HandleFunc("/login", authHandler.LoginGet).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/register", authHandler.RegisterGet).Methods("GET")
	router.HandleFunc("/register", authHandler.RegisterPost).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	router.HandleFunc("/carts", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/carts/add", cartHandler.AddItem).Methods("POST")
	router.HandleFunc("/carts/update", cartHandler.UpdateQty).Methods("POST")
	router.HandleFunc("/carts/clear", cartHandler.Clear).Methods("POST")

	authed := router.NewRoute().Subrouter()
	authed.Use(middlewares.AuthMiddleware(store))
	authed.HandleFunc("/checkout", checkoutHandler.GetCheckoutPage).Methods("GET")
	authed.HandleFunc("/checkout", checkoutHandler.PlaceOrder).Methods("POST")
	authed.HandleFunc("/orders", orderHandler.OrderListGet).Methods("GET")
	authed.HandleFunc("/orders/{id}", orderHandler.OrderDetailGet).Methods("GET")
	authed.HandleFunc("/wallet", walletHandler.GetWalletPage).Methods("GET")
	authed.HandleFunc("/wallet/withdraw", walletHandler.RequestWithdrawalPost).Methods("POST")
	authed.HandleFunc("/wallet/apply", walletHandler.ApplyInfluencerPost).Methods("POST")
	authed.HandleFunc("/campaigns/{id}/referral", campaignHandler.ReferralLink).Methods("GET")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AuthMiddleware(store))
	adminRouter.Use(middlewares.AdminMiddleware(userRepo))
	adminRouter.HandleFunc("/dashboard", adminHandler.GetDashboardPage).Methods("GET")
	adminRouter.HandleFunc("/orders", adminHandler.GetOrdersPage).Methods("GET")
	adminRouter.HandleFunc("/orders/status", adminHandler.UpdateOrderStatusPost).Methods("POST")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.GetOrderDetailPage).Methods("GET")
	adminRouter.HandleFunc("/withdrawals", adminHandler.GetWithdrawalsPage).Methods("GET")
	adminRouter.HandleFunc("/withdrawals/{id}/approve", adminHandler.ApproveWithdrawalPost).Methods("POST")
	adminRouter.HandleFunc("/withdrawals/{id}/reject", adminHandler.RejectWithdrawalPost).Methods("POST")
	adminRouter.HandleFunc("/transactions", adminHandler.GetTransactionsPage).Methods("GET")
	adminRouter.HandleFunc("/balance/adjust", adminHandler.AdjustBalancePost).Methods("POST")
	adminRouter.HandleFunc("/inventory", adminHandler.GetLowStockPage).Methods("GET")
	adminRouter.HandleFunc("/inventory/adjust", adminHandler.AdjustStockPost).Methods("POST")
	adminRouter.HandleFunc("/influencers", adminHandler.GetInfluencersPage).Methods("GET")
	adminRouter.HandleFunc("/influencers/{id}/approve", adminHandler.ApproveKycPost).Methods("POST")
	adminRouter.HandleFunc("/influencers/{id}/reject", adminHandler.RejectKycPost).Methods("POST")
	adminRouter.HandleFunc("/settings", adminHandler.GetSettingsPage).Methods("GET")
	adminRouter.HandleFunc("/settings", adminHandler.UpdateSettingsPost).Methods("POST")
	adminRouter.HandleFunc("/campaigns", adminHandler.GetCampaignsPage).Methods("GET")
	adminRouter.HandleFunc("/campaigns", adminHandler.CreateCampaignPost).Methods("POST")
	adminRouter.HandleFunc("/campaigns/{id}/toggle", adminHandler.ToggleCampaignPost).Methods("POST")
	adminRouter.HandleFunc("/flash-deals", adminHandler.GetFlashDealsPage).Methods("GET")
	adminRouter.HandleFunc("/flash-deals", adminHandler.CreateFlashDealPost).Methods("POST")

	csrfMiddleware := csrf.Protect(
		keys.AuthKey,
		csrf.Secure(false),
		csrf.Path("/"),
	)

	// The gateway posts notifications without a CSRF token, so the webhook
	// sits outside the protected router.
	outer := mux.NewRouter()
	outer.HandleFunc("/payments/midtrans/notification", orderHandler.MidtransNotificationPost).Methods("POST")
	outer.PathPrefix("/").Handler(csrfMiddleware(router))

	return outer
}
