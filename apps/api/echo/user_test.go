package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillhq/newsroom/core/user"
)

func TestUserLoginRedirectsToPortal(t *testing.T) {
	app, deps := setup(t)

	createUser(t, deps.usrRepo, "Eve", "eveadmin", "eve@quill.test", "LePassword007!", []string{user.RoleAdminEIC}, true)
	createUser(t, deps.usrRepo, "Sam", "samwrites", "sam@quill.test", "LePassword007!", []string{user.RoleStaffer}, true)
	createUser(t, deps.usrRepo, "Cleo", "cleoreads", "cleo@quill.test", "LePassword007!", []string{user.RoleClient}, true)
	createUser(t, deps.usrRepo, "Nia", "nialeft", "nia@quill.test", "LePassword007!", []string{user.RoleStaffer}, false)

	tests := []struct {
		name       string
		body       interface{}
		wantCode   int
		wantPortal string
	}{
		{
			name:       "admin lands on dashboard",
			body:       LoginRequest{Username: "eveadmin", Password: "LePassword007!"},
			wantCode:   http.StatusOK,
			wantPortal: user.AdminPortalPath,
		},
		{
			name:       "staffer lands on panel",
			body:       LoginRequest{Username: "samwrites", Password: "LePassword007!"},
			wantCode:   http.StatusOK,
			wantPortal: user.StafferPortalPath,
		},
		{
			name:       "client lands on home",
			body:       LoginRequest{Username: "cleoreads", Password: "LePassword007!"},
			wantCode:   http.StatusOK,
			wantPortal: user.ClientPortalPath,
		},
		{
			name:       "login with email",
			body:       LoginRequest{Username: "sam@quill.test", Password: "LePassword007!"},
			wantCode:   http.StatusOK,
			wantPortal: user.StafferPortalPath,
		},
		{
			name:     "wrong password",
			body:     LoginRequest{Username: "samwrites", Password: "nope"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown user",
			body:     LoginRequest{Username: "ghost", Password: "LePassword007!"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "deactivated account",
			body:     LoginRequest{Username: "nialeft", Password: "LePassword007!"},
			wantCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", marshallObj(t, tt.body))
			app.ServeHTTP(rec, req)

			checkCode(t, rec, tt.wantCode)
			if tt.wantCode == http.StatusOK {
				var resp LoginResponse
				decodeBody(t, rec, &resp)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, tt.wantPortal, resp.Portal)
			}
		})
	}
}

func TestUserQueryIsAdminOnly(t *testing.T) {
	app, deps := setup(t)

	admin := createUser(t, deps.usrRepo, "Eve", "eveadmin", "eve@quill.test", "LePassword007!", []string{user.RoleAdminEIC}, true)
	staffer := createUser(t, deps.usrRepo, "Sam", "samwrites", "sam@quill.test", "LePassword007!", []string{user.RoleStaffer}, true)

	// no token
	req, rec := newRequest(http.MethodGet, "/v1/users")
	app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusUnauthorized)
	var herr httpErr
	decodeBody(t, rec, &herr)
	assert.Equal(t, errMissingToken, herr)

	// staffer token
	req, rec = newAuthRequest(http.MethodGet, "/v1/users", getToken(t, staffer))
	app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusForbidden)

	// admin token
	req, rec = newAuthRequest(http.MethodGet, "/v1/users", getToken(t, admin))
	app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusOK)
	var users []user.User
	decodeBody(t, rec, &users)
	assert.Len(t, users, 2)
}

func TestUserTokenRefresh(t *testing.T) {
	app, deps := setup(t)

	staffer := createUser(t, deps.usrRepo, "Sam", "samwrites", "sam@quill.test", "LePassword007!", []string{user.RoleStaffer}, true)

	req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, staffer))
	app.ServeHTTP(rec, req)

	checkCode(t, rec, http.StatusOK)
	var resp LoginResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
}

func TestUserPasswordReset(t *testing.T) {
	app, deps := setup(t)

	createUser(t, deps.usrRepo, "Sam", "samwrites", "sam@quill.test", "LePassword007!", []string{user.RoleStaffer}, true)

	// the response never leaks whether the account exists
	for _, email := range []string{"sam@quill.test", "ghost@quill.test"} {
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", marshallObj(t, PasswordResetRequest{Email: email}))
		app.ServeHTTP(rec, req)
		checkCode(t, rec, http.StatusOK)
	}

	// malformed email is rejected
	req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", marshallObj(t, PasswordResetRequest{Email: "nope"}))
	app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusBadRequest)
}

func TestUserRegisterRoleEscalationIsBlocked(t *testing.T) {
	app, deps := setup(t)

	admin := createUser(t, deps.usrRepo, "Ada", "adaadmin", "ada@quill.test", "LePassword007!", []string{user.RoleAdmin}, true)

	// a plain admin cannot mint an EIC
	body := marshallObj(t, user.NewUser{
		Name:            "Mallory",
		Username:        "mallory1",
		Email:           "mallory@quill.test",
		Password:        "LePassword007!",
		PasswordConfirm: "LePassword007!",
		Roles:           []string{user.RoleAdminEIC},
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", getToken(t, admin), body)
	app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusBadRequest)

	// a role within reach is fine
	body = marshallObj(t, user.NewUser{
		Name:            "Sam",
		Username:        "samwrites",
		Email:           "sam@quill.test",
		Password:        "LePassword007!",
		PasswordConfirm: "LePassword007!",
		Roles:           []string{user.RoleStaffer},
	})
	req, rec = newAuthRequest(http.MethodPost, "/v1/users/register", getToken(t, admin), body)
	app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusCreated)
}
