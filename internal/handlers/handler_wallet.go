package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// walletHandler manages wallets of the caller's default account.
type walletHandler struct {
	accountService *services.AccountService
	walletService  *services.WalletService
}

func newWalletHandler(as *services.AccountService, ws *services.WalletService) *walletHandler {
	return &walletHandler{accountService: as, walletService: ws}
}

func registerWalletRoutes(rg *gin.RouterGroup, accountService *services.AccountService, walletService *services.WalletService) {
	h := newWalletHandler(accountService, walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("", h.listWallets)
		wallets.POST("", h.createWallet)
		wallets.POST("/:id/deposit", h.deposit)
		wallets.POST("/:id/withdraw", h.withdraw)
		wallets.POST("/:id/default", h.setDefault)
	}
}

func (h *walletHandler) listWallets(c *gin.Context) {
	_, account, ok := requireDefaultAccount(c, h.accountService, domain.PermWalletsView)
	if !ok {
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Wallets retrieved", dto.ToWalletResponses(wallets))
}

func (h *walletHandler) createWallet(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermWalletsManage)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), account.AccountID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Wallet created", dto.ToWalletResponse(wallet))
}

func (h *walletHandler) deposit(c *gin.Context) {
	h.adjust(c, true, "Deposit recorded")
}

func (h *walletHandler) withdraw(c *gin.Context) {
	h.adjust(c, false, "Withdrawal recorded")
}

func (h *walletHandler) adjust(c *gin.Context, deposit bool, message string) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermWalletsManage)
	if !ok {
		return
	}

	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var err error
	var wallet *domain.Wallet
	if deposit {
		wallet, err = h.walletService.Deposit(c.Request.Context(), account.AccountID, c.Param("id"), req.Amount, userID)
	} else {
		wallet, err = h.walletService.Withdraw(c.Request.Context(), account.AccountID, c.Param("id"), req.Amount, userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, message, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) setDefault(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermWalletsManage)
	if !ok {
		return
	}

	wallet, err := h.walletService.SetDefault(c.Request.Context(), account.AccountID, c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Default wallet updated", dto.ToWalletResponse(wallet))
}
