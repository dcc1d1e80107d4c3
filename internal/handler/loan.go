package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fernbank/lending-engine/internal/domain"
	"github.com/fernbank/lending-engine/internal/service"
	"github.com/fernbank/lending-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Apply handles POST /api/v1/loans
func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var request domain.ApplyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid request", err)
		return
	}

	loan, err := h.service.Submit(r.Context(), requestUserID(r), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, loan)
}

// List handles GET /api/v1/loans
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.List(r.Context(), requestUserID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, domain.LoanListResponse{Loans: loans})
}

// Get handles GET /api/v1/loans/{loanId}
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["loanId"])
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	loan, err := h.service.Get(r.Context(), requestUserID(r), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, loan)
}
