package admin

import (
	"github.com/go-playground/validator/v10"
	"github.com/prabeshkharel/earnkart/app/repositories"
	"github.com/prabeshkharel/earnkart/app/services"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render         *render.Render
	validator      *validator.Validate
	productRepo    repositories.ProductRepository
	userRepo       repositories.UserRepository
	orderRepo      repositories.OrderRepository
	withdrawalRepo repositories.WithdrawalRepository
	txRepo         repositories.TransactionRepository
	campaignRepo   repositories.CampaignRepository
	flashDealRepo  repositories.FlashDealRepository
	settingRepo    repositories.SettingRepository
	orderSvc       *services.OrderService
	walletSvc      *services.WalletService
	stockSvc       *services.StockService
	influencerSvc  *services.InfluencerService
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	orderRepo repositories.OrderRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	txRepo repositories.TransactionRepository,
	campaignRepo repositories.CampaignRepository,
	flashDealRepo repositories.FlashDealRepository,
	settingRepo repositories.SettingRepository,
	orderSvc *services.OrderService,
	walletSvc *services.WalletService,
	stockSvc *services.StockService,
	influencerSvc *services.InfluencerService,
) *AdminHandler {
	return &AdminHandler{
		render:         render,
		validator:      validator,
		productRepo:    productRepo,
		userRepo:       userRepo,
		orderRepo:      orderRepo,
		withdrawalRepo: withdrawalRepo,
		txRepo:         txRepo,
		campaignRepo:   campaignRepo,
		flashDealRepo:  flashDealRepo,
		settingRepo:    settingRepo,
		orderSvc:       orderSvc,
		walletSvc:      walletSvc,
		stockSvc:       stockSvc,
		influencerSvc:  influencerSvc,
	}
}
