// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"prompthis/internal/middleware"
	"prompthis/internal/session"
)

// credentialsRequest is the body of signup and signin.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the user object returned by auth endpoints.
func (a *API) userPayload(sess *session.Data) map[string]any {
	return map[string]any{
		"id":    sess.UserID,
		"email": sess.Email,
		"tier":  a.resolveTier(sess),
	}
}

// SignUp creates an account and signs the new user in.
func (a *API) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if msg := validateEmail(req.Email); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validatePassword(req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("signup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "An account with this email already exists.")
		return
	}

	user, err := a.users.Create(req.Email, req.Password)
	if err != nil {
		slog.Error("signup create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	// New accounts have no 2FA yet, so the session is fully authenticated.
	data := &session.Data{UserID: user.ID, Email: user.Email, TwoFADone: true}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	slog.Info("user signed up", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"user": a.userPayload(data)})
}

// SignIn verifies credentials and opens a session. Accounts with TOTP
// enabled get a half-authenticated session until the code is verified.
func (a *API) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("signin lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	data := &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		TwoFADone: !user.TOTPEnabled,
	}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	if !data.TwoFADone {
		writeJSON(w, http.StatusOK, map[string]any{"twoFactorRequired": true})
		return
	}

	slog.Info("user signed in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": a.userPayload(data)})
}

// TwoFASetup generates a TOTP secret for the signed-in user and returns it
// with a QR code for the authenticator app. The secret becomes active only
// after TwoFAVerify confirms a code.
func (a *API) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Prompthis",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"secret": key.Secret(),
		"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAVerify validates a TOTP code, enabling 2FA on first verification and
// completing the half-authenticated session.
func (a *API) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is not set up.")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "Invalid code. Please try again.")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": a.userPayload(sess)})
}

// SignOut destroys the session.
func (a *API) SignOut(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the current authentication state. For free-tier users it
// includes today's usage so the UI can show remaining generations.
func (a *API) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	resp := map[string]any{
		"authenticated":    sess.TwoFADone,
		"twoFactorPending": !sess.TwoFADone,
		"user":             a.userPayload(sess),
	}

	if sess.TwoFADone && a.quota != nil && !a.resolveTier(sess).Paid() {
		count, err := a.quota.Count(r.Context(), sess.UserID, timeNow())
		if err != nil {
			slog.Warn("usage count failed", "error", err)
		} else {
			resp["usage"] = map[string]int{"count": count, "limit": a.quota.Limit()}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
