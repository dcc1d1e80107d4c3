package handler

import (
	"net/http"

	"github.com/fernbank/lending-engine/internal/domain"
	"github.com/fernbank/lending-engine/internal/service"
	"github.com/fernbank/lending-engine/pkg/response"
)

type ReferralHandler struct {
	service *service.ReferralService
}

func NewReferralHandler(service *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{service: service}
}

// GetCode handles POST /api/v1/referrals/code. Allocation is idempotent, so
// repeated calls return the caller's existing code.
func (h *ReferralHandler) GetCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.GetOrCreateCode(r.Context(), requestUserID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, domain.ReferralCodeResponse{ReferralCode: code})
}

// List handles GET /api/v1/referrals
func (h *ReferralHandler) List(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.service.List(r.Context(), requestUserID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, domain.ReferralListResponse{Referrals: referrals})
}
