package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	"github.com/dropDatabas3/inkboard/internal/http/middlewares"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
	"github.com/dropDatabas3/inkboard/internal/jwt"
	usersmem "github.com/dropDatabas3/inkboard/internal/users/memory"
)

const testSecret = "controllers-test-secret"

func newControllers() *Controllers {
	service := svc.New(svc.Deps{
		Users:  usersmem.New(),
		Issuer: jwt.NewIssuer("inkboard-test", []byte(testSecret)),
	})
	return NewControllers(service, dto.CookieConfig{})
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == middlewares.AuthCookieName {
			return ck
		}
	}
	return nil
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	c := newControllers()

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"s3cret-pass","confirmPassword":"s3cret-pass"}`
	rr := doJSON(t, c.Register.Register, http.MethodPost, "/api/auth/register", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d body=%s", rr.Code, rr.Body.String())
	}

	var resp dto.SessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rr.Body.String(), "s3cret-pass") {
		t.Fatal("password leaked in response")
	}

	ck := sessionCookie(t, rr)
	if ck == nil || !ck.HttpOnly || ck.Value != resp.Token {
		t.Fatalf("session cookie: %+v", ck)
	}
}

func TestRegisterConflictAndValidation(t *testing.T) {
	c := newControllers()

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"s3cret-pass","confirmPassword":"s3cret-pass"}`
	if rr := doJSON(t, c.Register.Register, http.MethodPost, "/api/auth/register", body); rr.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rr.Code)
	}
	if rr := doJSON(t, c.Register.Register, http.MethodPost, "/api/auth/register", body); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", rr.Code)
	}

	short := `{"firstName":"Ada","lastName":"Lovelace","email":"ada2@example.com","password":"abc","confirmPassword":"abc"}`
	if rr := doJSON(t, c.Register.Register, http.MethodPost, "/api/auth/register", short); rr.Code != http.StatusBadRequest {
		t.Fatalf("short password status = %d", rr.Code)
	}
}

func TestLoginAndLogout(t *testing.T) {
	c := newControllers()

	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"s3cret-pass","confirmPassword":"s3cret-pass"}`
	if rr := doJSON(t, c.Register.Register, http.MethodPost, "/api/auth/register", body); rr.Code != http.StatusCreated {
		t.Fatalf("register: %d", rr.Code)
	}

	rr := doJSON(t, c.Login.Login, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"s3cret-pass"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", rr.Code, rr.Body.String())
	}
	if ck := sessionCookie(t, rr); ck == nil || ck.Value == "" {
		t.Fatal("login must set the session cookie")
	}

	rr = doJSON(t, c.Login.Login, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", rr.Code)
	}

	rr = doJSON(t, c.Logout.Logout, http.MethodPost, "/api/auth/logout", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rr.Code)
	}
	ck := sessionCookie(t, rr)
	if ck == nil || ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("logout must expire the cookie: %+v", ck)
	}
}

func TestMeWithAndWithoutSession(t *testing.T) {
	c := newControllers()

	// Sin sesión: 200 con authenticated=false, nunca 401.
	rr := doJSON(t, c.Me.Me, http.MethodGet, "/api/auth/me", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("anonymous me status = %d", rr.Code)
	}
	var me dto.MeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &me); err != nil {
		t.Fatal(err)
	}
	if me.Authenticated || me.User != nil {
		t.Fatalf("anonymous me: %+v", me)
	}

	// Registrar y pasar por el middleware de auth con la cookie puesta.
	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"s3cret-pass","confirmPassword":"s3cret-pass"}`
	regRR := doJSON(t, c.Register.Register, http.MethodPost, "/api/auth/register", body)
	ck := sessionCookie(t, regRR)
	if ck == nil {
		t.Fatal("no session cookie from register")
	}

	handler := middlewares.WithAuth(middlewares.AuthConfig{
		Secret: []byte(testSecret),
		Issuer: "inkboard-test",
	})(http.HandlerFunc(c.Me.Me))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(ck)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("me with session status = %d", rr.Code)
	}
	me = dto.MeResponse{}
	if err := json.Unmarshal(rr.Body.Bytes(), &me); err != nil {
		t.Fatal(err)
	}
	if !me.Authenticated || me.User == nil || me.User.Email != "ada@example.com" {
		t.Fatalf("me with session: %+v", me)
	}
}
