package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fernbank/lending-engine/internal/domain"
	"github.com/fernbank/lending-engine/internal/service"
	"github.com/fernbank/lending-engine/pkg/response"
)

type SavingsHandler struct {
	service   *service.SavingsService
	validator *validator.Validate
}

func NewSavingsHandler(service *service.SavingsService) *SavingsHandler {
	return &SavingsHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Get handles GET /api/v1/savings
func (h *SavingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	savings, err := h.service.Get(r.Context(), requestUserID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, savings)
}

// Deposit handles POST /api/v1/savings/deposits
func (h *SavingsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var request domain.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid request", err)
		return
	}

	savings, err := h.service.Deposit(r.Context(), requestUserID(r), request.Amount)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, savings)
}
