package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// accountHandler exposes the caller's account memberships and the default
// account switch.
type accountHandler struct {
	accountService *services.AccountService
}

func newAccountHandler(as *services.AccountService) *accountHandler {
	return &accountHandler{accountService: as}
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService *services.AccountService) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("/switch", h.switchAccount)
	}
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	memberships, err := h.accountService.GetUserAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Accounts retrieved", dto.ToUserAccountResponses(memberships))
}

func (h *accountHandler) switchAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SwitchAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.accountService.SwitchAccount(c.Request.Context(), userID, req.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Account switched", resp)
}
