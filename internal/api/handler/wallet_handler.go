package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/walletmock/wallet-api/internal/core/domain"
	"github.com/walletmock/wallet-api/internal/core/ports"
)

// WalletHandler exposes the ledger of the authenticated user.
type WalletHandler struct {
	service ports.WalletService
}

func NewWalletHandler(service ports.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

// Deposit handles POST /addEntry.
//
// @Summary      Record a deposit
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      entryRequest  true  "Amount and description"
// @Success      201   {object}  recordEntryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /addEntry [post]
func (h *WalletHandler) Deposit(c echo.Context) error {
	return h.record(c, domain.EntryDeposit)
}

// Withdraw handles POST /SubtractEntry.
//
// @Summary      Record a withdrawal
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      entryRequest  true  "Amount and description"
// @Success      201   {object}  recordEntryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /SubtractEntry [post]
func (h *WalletHandler) Withdraw(c echo.Context) error {
	return h.record(c, domain.EntryWithdrawal)
}

func (h *WalletHandler) record(c echo.Context, typ domain.EntryType) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.RecordEntry(c.Request().Context(), ctxToken(c), ports.EntryInput{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        typ,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, recordEntryResponse{
		Message: "entry recorded",
		Entry:   toEntryResponse(entry),
	})
}

// List handles GET /MainPage and GET /wallet.
//
// @Summary      List the wallet entries
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entryResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /MainPage [get]
// @Router       /wallet [get]
func (h *WalletHandler) List(c echo.Context) error {
	entries, err := h.service.ListWallet(c.Request().Context(), ctxToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryListResponse(entries))
}
