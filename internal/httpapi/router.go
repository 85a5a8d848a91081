// Package httpapi exposes wallet operations over HTTP using chi, modeled on
// the wallet server's controller/route split but backed by the agent
// service instead of re-deriving block logic in the handler.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/synthron-labs/nanoagent/internal/agent"
	"github.com/synthron-labs/nanoagent/internal/nanocore"
	"github.com/synthron-labs/nanoagent/internal/upstream"
)

// Handler serves the wallet HTTP surface.
type Handler struct {
	svc      *agent.Service
	upstream *upstream.Client
}

// NewRouter builds a chi.Router exposing the wallet HTTP surface.
func NewRouter(svc *agent.Service, up *upstream.Client) http.Handler {
	h := &Handler{svc: svc, upstream: up}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/wallet", h.getWallet)
	r.Get("/api/wallet/balance", h.getBalance)
	r.Post("/api/wallet/send", h.postSend)
	r.Post("/api/wallet/receive", h.postReceive)
	r.Get("/api/credits/{address}", h.getCredits)
	r.Post("/api/donate", h.postDonate)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Infof("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusForCoreError(err *nanocore.Error) int {
	switch err.Kind {
	case nanocore.ErrInsufficientFunds, nanocore.ErrInvalidAddress, nanocore.ErrInvalidNumberFormat,
		nanocore.ErrInvalidNegativeAmount, nanocore.ErrInvalidWholeNumber, nanocore.ErrInvalidFractionalPart,
		nanocore.ErrTooManyDecimalPlaces, nanocore.ErrAmountTooLarge:
		return http.StatusBadRequest
	case nanocore.ErrWorkServerError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) getWallet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"address": h.svc.Address()})
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Balance(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type moveRequest struct {
	AmountNano string `json:"amount_nano"`
	Link       string `json:"link"`
}

func (h *Handler) postSend(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, cerr := nanocore.NanoToRaw(req.AmountNano)
	if cerr != nil {
		writeError(w, statusForCoreError(cerr), cerr)
		return
	}
	block, err := h.svc.Send(r.Context(), amount, req.Link)
	if err != nil {
		if cerr, ok := err.(*nanocore.Error); ok {
			writeError(w, statusForCoreError(cerr), cerr)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (h *Handler) postReceive(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, cerr := nanocore.NanoToRaw(req.AmountNano)
	if cerr != nil {
		writeError(w, statusForCoreError(cerr), cerr)
		return
	}
	block, err := h.svc.Receive(r.Context(), amount, req.Link)
	if err != nil {
		if cerr, ok := err.(*nanocore.Error); ok {
			writeError(w, statusForCoreError(cerr), cerr)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (h *Handler) getCredits(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	credits, err := h.upstream.Credits(r.Context(), address)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (h *Handler) postDonate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.upstream.Donate(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
