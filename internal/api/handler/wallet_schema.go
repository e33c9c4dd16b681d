package handler

import (
	"github.com/shopspring/decimal"

	"github.com/walletmock/wallet-api/internal/core/domain"
)

// entryRequest accepts the amount as a JSON number or a numeric string.
type entryRequest struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	Description string          `json:"description"`
}

type entryResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

type recordEntryResponse struct {
	Message string        `json:"message"`
	Entry   entryResponse `json:"entry"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Amount:      e.Amount.StringFixed(domain.AmountPlaces),
		Description: e.Description,
		Type:        string(e.Type),
		Date:        e.Date,
	}
}

func toEntryListResponse(entries []*domain.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}
