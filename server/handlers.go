package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lotocart/application"
	"lotocart/domain/entities"
	"lotocart/domain/services"
	"lotocart/repository"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// Request DTOs. Validation tags cover shape only; the domain services enforce
// the business rules.
type updateInputRequest struct {
	RawInput string `json:"raw_input"`
}

type updateDigitsRequest struct {
	DigitLengths []int `json:"digit_lengths" validate:"required,dive,min=1,max=4"`
}

type updateBetRequest struct {
	BetAmount string `json:"bet_amount"`
}

type updateLotteriesRequest struct {
	LotteryIDs []int64 `json:"lottery_ids" validate:"required"`
}

type paymentResultRequest struct {
	Succeeded *bool `json:"succeeded" validate:"required"`
}

type reuseOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type submitResponse struct {
	Cart             *entities.Cart `json:"cart"`
	ProceedToPayment bool           `json:"proceed_to_payment"`
}

type paymentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type paymentResultResponse struct {
	Cart      *entities.Cart `json:"cart"`
	Succeeded bool           `json:"succeeded"`
	FormReset bool           `json:"form_reset"`
}

type whatsappResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	cart, err := s.checkout.CreateSession(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, cart)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	cart, err := s.checkout.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleListLotteries(w http.ResponseWriter, r *http.Request) {
	lotteries, err := s.checkout.ListLotteries(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lotteries)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	details, err := s.checkout.OrderReceipt(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleUpdateInput(w http.ResponseWriter, r *http.Request) {
	var req updateInputRequest
	if !s.decode(w, r, &req) {
		return
	}
	cart, err := s.checkout.UpdateInput(r.Context(), chi.URLParam(r, "sessionID"), req.RawInput)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleUpdateDigits(w http.ResponseWriter, r *http.Request) {
	var req updateDigitsRequest
	if !s.decode(w, r, &req) {
		return
	}
	cart, err := s.checkout.UpdateDigitLengths(r.Context(), chi.URLParam(r, "sessionID"), req.DigitLengths)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleUpdateBet(w http.ResponseWriter, r *http.Request) {
	var req updateBetRequest
	if !s.decode(w, r, &req) {
		return
	}
	cart, err := s.checkout.UpdateBetAmount(r.Context(), chi.URLParam(r, "sessionID"), req.BetAmount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleUpdateLotteries(w http.ResponseWriter, r *http.Request) {
	var req updateLotteriesRequest
	if !s.decode(w, r, &req) {
		return
	}
	cart, err := s.checkout.UpdateLotteries(r.Context(), chi.URLParam(r, "sessionID"), req.LotteryIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleRemoveNumber(w http.ResponseWriter, r *http.Request) {
	digit, err := strconv.Atoi(chi.URLParam(r, "digit"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid digit"})
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid index"})
		return
	}

	cart, err := s.checkout.RemoveNumber(r.Context(), chi.URLParam(r, "sessionID"), digit, index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	result, cart, err := s.checkout.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, submitResponse{
		Cart:             cart,
		ProceedToPayment: result.ProceedToPayment,
	})
}

func (s *Server) handleBeginPayment(w http.ResponseWriter, r *http.Request) {
	secret, _, err := s.checkout.BeginPayment(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, paymentResponse{ClientSecret: secret})
}

func (s *Server) handleResolvePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentResultRequest
	if !s.decode(w, r, &req) {
		return
	}
	outcome, cart, err := s.checkout.ResolvePayment(r.Context(), chi.URLParam(r, "sessionID"), *req.Succeeded)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, paymentResultResponse{
		Cart:      cart,
		Succeeded: outcome.Succeeded,
		FormReset: outcome.FormReset,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	cart, err := s.checkout.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleReuseOrder(w http.ResponseWriter, r *http.Request) {
	var req reuseOrderRequest
	if !s.decode(w, r, &req) {
		return
	}
	cart, err := s.checkout.ReuseOrder(r.Context(), chi.URLParam(r, "sessionID"), req.OrderID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	link, err := s.checkout.WhatsAppLink(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, whatsappResponse{URL: link})
}

// decode unmarshals and validates a JSON request body. Writes the error
// response itself and returns false when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// writeError maps domain errors onto HTTP status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, application.ErrSessionNotFound),
		errors.Is(err, services.ErrNumberNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNoLotterySelected),
		errors.Is(err, services.ErrNoValidNumbers),
		errors.Is(err, services.ErrNoDigitTypeSelected),
		errors.Is(err, services.ErrMissingBetAmount),
		errors.Is(err, services.ErrInvalidBetAmount),
		errors.Is(err, services.ErrInvalidDigitLength),
		errors.Is(err, services.ErrUnknownLottery),
		errors.Is(err, services.ErrEmptyOrder):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNoOrderDraft),
		errors.Is(err, application.ErrNoDraft),
		errors.Is(err, repository.ErrStaleCart):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
