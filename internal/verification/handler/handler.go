// Package handler exposes the verification protocol over HTTP: one JSON
// endpoint dispatching on an action field, plus CORS preflight support.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"field-attendance/backend/internal/verification/service"
)

// Handler serves POST and OPTIONS on the verification endpoint.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// request is the wire shape shared by all actions. Fields a given action does
// not use are ignored.
type request struct {
	Action      string          `json:"action"`
	Token       string          `json:"token"`
	Response    json.RawMessage `json:"response,omitempty"`
	DeviceLabel string          `json:"deviceLabel,omitempty"`
	Code        string          `json:"code,omitempty"`
}

type statusResponse struct {
	EmployeeName    string `json:"employeeName"`
	CredentialCount int    `json:"credentialCount"`
	RPID            string `json:"rpId"`
}

type optionsResponse struct {
	Options any    `json:"options"`
	RPID    string `json:"rpId"`
}

type verifyResponse struct {
	Verified     bool   `json:"verified"`
	CredentialID string `json:"credentialId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeCORS(w, r)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	action, err := service.ParseAction(req.Action)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rp, err := service.RelyingPartyFromOrigin(r.Header.Get("Origin"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	ctx := r.Context()
	switch action {
	case service.ActionStatus:
		st, err := h.svc.Status(ctx, rp, req.Token)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{
			EmployeeName:    st.EmployeeName,
			CredentialCount: st.CredentialCount,
			RPID:            st.RPID,
		})
	case service.ActionRegistrationOptions:
		options, err := h.svc.RegistrationOptions(ctx, rp, req.Token)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, optionsResponse{Options: options, RPID: rp.ID})
	case service.ActionRegistrationVerify:
		result, err := h.svc.RegistrationVerify(ctx, rp, req.Token, req.Response, req.DeviceLabel)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeVerify(w, result)
	case service.ActionAuthenticationOptions:
		options, err := h.svc.AuthenticationOptions(ctx, rp, req.Token)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, optionsResponse{Options: options, RPID: rp.ID})
	case service.ActionAuthenticationVerify:
		result, err := h.svc.AuthenticationVerify(ctx, rp, req.Token, req.Response)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeVerify(w, result)
	case service.ActionFallbackVerify:
		result, err := h.svc.FallbackVerify(ctx, req.Token, req.Code)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeVerify(w, result)
	}
}

// writeError maps service sentinels to statuses. Anything unexpected becomes
// a generic 500 so internal details never reach the client.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrChallengeExpired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		log.Printf("verification: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeVerify(w http.ResponseWriter, result *service.VerifyResult) {
	writeJSON(w, http.StatusOK, verifyResponse{
		Verified:     result.Verified,
		CredentialID: result.CredentialID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("verification: encode response: %v", err)
	}
}

// writeCORS echoes the request origin. The endpoint is meant to be called
// from check-in pages on arbitrary customer domains; the token, not the
// origin, is the access control.
func writeCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, ApiKey")
	h.Set("Access-Control-Max-Age", "86400")
	h.Add("Vary", "Origin")
}
