package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/fieldscope/fieldscope/internal/account/domain"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentityService struct {
	identitydomain.Service

	authenticateCalls int
	session           *identitydomain.Session
	err               error
}

func (f *fakeIdentityService) Authenticate(ctx context.Context, rawToken string) (*identitydomain.Session, error) {
	f.authenticateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeAccountService struct {
	deleteErr    error
	deleteCalls  int
	updateErr    error
	updatedUser  *identitydomain.User
	lastCaller   snowflake.ID
	lastTarget   string
	lastNewEmail string
}

func (f *fakeAccountService) DeleteAccount(ctx context.Context, callerID snowflake.ID, targetUserID string) error {
	f.deleteCalls++
	f.lastCaller = callerID
	f.lastTarget = targetUserID
	return f.deleteErr
}

func (f *fakeAccountService) UpdateEmail(ctx context.Context, callerID snowflake.ID, targetUserID, newEmail string) (*identitydomain.User, error) {
	f.lastCaller = callerID
	f.lastTarget = targetUserID
	f.lastNewEmail = newEmail
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updatedUser, nil
}

func newAdminTestServer(identity *fakeIdentityService, account *fakeAccountService) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		engine:      gin.New(),
		identitySvc: identity,
		accountSvc:  account,
	}
	s.registerAdminRoutes()
	return s
}

func postAdmin(s *Server, path, token string, body map[string]any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAdminDeleteUser_NoAuthorizationHeader(t *testing.T) {
	identity := &fakeIdentityService{}
	account := &fakeAccountService{}
	s := newAdminTestServer(identity, account)

	w := postAdmin(s, "/api/admin/delete-user", "", map[string]any{"targetUserId": "123"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No authorization header", decodeBody(t, w)["error"])
	assert.Zero(t, identity.authenticateCalls, "missing header must be answered without a session lookup")
	assert.Zero(t, account.deleteCalls)
}

func TestAdminDeleteUser_InvalidToken(t *testing.T) {
	identity := &fakeIdentityService{err: identitydomain.ErrInvalidSession}
	account := &fakeAccountService{}
	s := newAdminTestServer(identity, account)

	w := postAdmin(s, "/api/admin/delete-user", "bad-token", map[string]any{"targetUserId": "123"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
	assert.Zero(t, account.deleteCalls)
}

func TestAdminDeleteUser_ErrorContract(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{"non-manager", accountdomain.ErrManagerRequired, http.StatusForbidden, "Only managers can delete users"},
		{"missing target", accountdomain.ErrTargetRequired, http.StatusBadRequest, "Missing targetUserId"},
		{"invalid target", accountdomain.ErrInvalidTarget, http.StatusBadRequest, "Missing targetUserId"},
		{"self target", accountdomain.ErrCannotDeleteSelf, http.StatusBadRequest, "Cannot delete your own account"},
		{"superadmin target", accountdomain.ErrSuperadminProtected, http.StatusForbidden, "Cannot delete superadmin accounts"},
		{"storage failure", assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := &fakeIdentityService{session: &identitydomain.Session{UserID: 42}}
			account := &fakeAccountService{deleteErr: tc.serviceErr}
			s := newAdminTestServer(identity, account)

			w := postAdmin(s, "/api/admin/delete-user", "token", map[string]any{"targetUserId": "123"})

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantError, decodeBody(t, w)["error"])
		})
	}
}

func TestAdminDeleteUser_Success(t *testing.T) {
	identity := &fakeIdentityService{session: &identitydomain.Session{UserID: 42}}
	account := &fakeAccountService{}
	s := newAdminTestServer(identity, account)

	w := postAdmin(s, "/api/admin/delete-user", "token", map[string]any{"targetUserId": "123"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User deleted successfully", body["message"])
	assert.Equal(t, snowflake.ID(42), account.lastCaller)
	assert.Equal(t, "123", account.lastTarget)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminUpdateUserEmail_Success(t *testing.T) {
	identity := &fakeIdentityService{session: &identitydomain.Session{UserID: 42}}
	account := &fakeAccountService{
		updatedUser: &identitydomain.User{ID: 123, Email: "new@example.com"},
	}
	s := newAdminTestServer(identity, account)

	w := postAdmin(s, "/api/admin/update-user-email", "token", map[string]any{
		"targetUserId": "123",
		"newEmail":     "new@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "123", user["id"])
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, "new@example.com", account.lastNewEmail)
}

func TestAdminUpdateUserEmail_ErrorContract(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{"non-manager", accountdomain.ErrManagerRequired, http.StatusForbidden, "Only managers can update user emails"},
		{"superadmin target", accountdomain.ErrSuperadminProtected, http.StatusForbidden, "Cannot update superadmin accounts"},
		{"invalid email", accountdomain.ErrInvalidEmail, http.StatusBadRequest, "Invalid email"},
		{"taken email", accountdomain.ErrEmailTaken, http.StatusBadRequest, "Email already in use"},
		{"storage failure", assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := &fakeIdentityService{session: &identitydomain.Session{UserID: 42}}
			account := &fakeAccountService{updateErr: tc.serviceErr}
			s := newAdminTestServer(identity, account)

			w := postAdmin(s, "/api/admin/update-user-email", "token", map[string]any{
				"targetUserId": "123",
				"newEmail":     "x@example.com",
			})

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantError, decodeBody(t, w)["error"])
		})
	}
}

func TestAdminPreflight(t *testing.T) {
	s := newAdminTestServer(&fakeIdentityService{}, &fakeAccountService{})

	for _, path := range []string{"/api/admin/delete-user", "/api/admin/update-user-email"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Empty(t, w.Body.Bytes(), path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "authorization", path)
	}
}
