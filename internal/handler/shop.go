package handler

import (
	"net/http"

	"github.com/emberforge/guildmaster/internal/middleware"
	"github.com/emberforge/guildmaster/internal/model"
	"github.com/emberforge/guildmaster/internal/service"
)

// ShopHandler handles shop HTTP requests
type ShopHandler struct {
	svc *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(svc *service.ShopService) *ShopHandler {
	return &ShopHandler{svc: svc}
}

// Catalog handles GET /v1/shop - the fixed item catalog
func (h *ShopHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	WriteData(w, http.StatusOK, h.svc.Catalog())
}

// Purchase handles POST /v1/shop/purchases - buy one catalog item
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.PurchaseRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.ItemID == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "item_id", Message: "item ID is required"},
		}))
		return
	}

	result, err := h.svc.Purchase(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, result)
}
