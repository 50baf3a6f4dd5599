package handler

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skyshop-account-api/internal/errs"
	"skyshop-account-api/internal/service"
	"skyshop-account-api/internal/transport/http/middleware"
	"skyshop-account-api/internal/transport/http/response"
)

// CookieOpts describes the session cookie the API sets on login-like
// responses. HTTP-only always; Secure per deployment.
type CookieOpts struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type Account struct {
	svc    *service.Accounts
	cookie CookieOpts
}

func NewAccount(svc *service.Accounts, cookie CookieOpts) *Account {
	return &Account{svc: svc, cookie: cookie}
}

// sendSession sets the HTTP-only session cookie and mirrors the token in the
// body, matching the cookie+JSON delivery contract.
func (h *Account) sendSession(c *gin.Context, status int, sess *service.Session) {
	c.SetCookie(h.cookie.Name, sess.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	response.OK(c, status, gin.H{"token": sess.Token, "user": sess.User})
}

type registerIn struct {
	Name     string `json:"name" binding:"required,min=2,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Avatar   string `json:"avatar" binding:"required"` // base64 or data URL
}

func (h *Account) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	data, contentType, err := decodeImage(in.Avatar)
	if err != nil {
		response.Fail(c, errs.BadRequest("invalid avatar image"))
		return
	}
	sess, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password, data, contentType)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendSession(c, http.StatusCreated, sess)
}

type loginIn struct {
	// bound loosely so the missing-field failure carries the canonical
	// message instead of a validator one
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Account) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest("please enter email and password"))
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendSession(c, http.StatusOK, sess)
}

// Logout expires the cookie client-side. The token itself stays valid until
// its exp; there is no server-side revocation.
func (h *Account) Logout(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.OK(c, http.StatusOK, gin.H{"message": "logged out"})
}

type forgotIn struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Account) ForgotPassword(c *gin.Context) {
	var in forgotIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	if err := h.svc.ForgotPassword(c.Request.Context(), strings.TrimSpace(in.Email)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "email sent to " + in.Email + " successfully"})
}

type resetIn struct {
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (h *Account) ResetPassword(c *gin.Context) {
	var in resetIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	sess, err := h.svc.ResetPassword(c.Request.Context(), c.Param("token"), in.Password, in.ConfirmPassword)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendSession(c, http.StatusOK, sess)
}

func (h *Account) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.OK(c, http.StatusOK, gin.H{"user": u})
}

type updatePasswordIn struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (h *Account) UpdatePassword(c *gin.Context) {
	var in updatePasswordIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	u := middleware.CurrentUser(c)
	sess, err := h.svc.UpdatePassword(c.Request.Context(), u, in.OldPassword, in.NewPassword, in.ConfirmPassword)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendSession(c, http.StatusOK, sess)
}

type updateProfileIn struct {
	Name   string `json:"name" binding:"required,min=2,max=30"`
	Email  string `json:"email" binding:"required,email"`
	Avatar string `json:"avatar"` // optional; replaces the stored image when set
}

func (h *Account) UpdateProfile(c *gin.Context) {
	var in updateProfileIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	var (
		data        []byte
		contentType string
	)
	if in.Avatar != "" {
		var err error
		data, contentType, err = decodeImage(in.Avatar)
		if err != nil {
			response.Fail(c, errs.BadRequest("invalid avatar image"))
			return
		}
	}
	u := middleware.CurrentUser(c)
	updated, err := h.svc.UpdateProfile(c.Request.Context(), u, in.Name, in.Email, data, contentType)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": updated})
}

// decodeImage accepts either a raw base64 payload or a data URL
// ("data:image/png;base64,...") and returns the bytes plus content type.
func decodeImage(s string) ([]byte, string, error) {
	contentType := "image/png"
	if strings.HasPrefix(s, "data:") {
		rest := strings.TrimPrefix(s, "data:")
		meta, payload, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, "", base64.CorruptInputError(0)
		}
		if ct := strings.TrimSuffix(meta, ";base64"); ct != "" {
			contentType = ct
		}
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
