package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"churchhub/internal/adapters/http/middleware"
	"churchhub/internal/adapters/persistence/testutil"
	"churchhub/internal/config"
	"churchhub/internal/pkg/jwt"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const secret = "routes-test-secret"

type envelope struct {
	Success    bool            `json:"success"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type testAPI struct {
	t   *testing.T
	app *fiber.App
}

func newTestAPI(t *testing.T, ping func() error) *testAPI {
	t.Helper()
	cfg := &config.Config{AppMode: "dev", JWT: config.JWTConfig{Secret: secret, AccessTokenMins: 5}}
	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(cfg, log)})
	Setup(app, testutil.DB(t), cfg, log, ping)
	return &testAPI{t: t, app: app}
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(userID, userID+"@example.com", role, secret, 5)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return tok
}

func (a *testAPI) do(method, path, tok string, body any) (int, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := a.app.Test(req, -1)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

type churchBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Slug   string `json:"slug"`
}

func TestChurchAndReviewEndpoints(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	owner := token(t, "owner", "USER")
	visitor := token(t, "visitor", "USER")
	admin := token(t, "admin", "ADMIN")

	status, _ := api.do("POST", "/api/v1/churches", "", map[string]string{"name": "Grace Chapel"})
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d", status)
	}

	status, env := api.do("POST", "/api/v1/churches", owner, map[string]string{"name": "A"})
	if status != http.StatusBadRequest || env.Extensions.Code != "VALIDATION_ERROR" {
		t.Fatalf("bad name = %d %+v", status, env)
	}

	status, env = api.do("POST", "/api/v1/churches", owner, map[string]string{"name": "Tokyo Baptist Church"})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %+v", status, env)
	}
	created := decode[churchBody](t, env.Data)
	if created.Status != "DRAFT" {
		t.Fatalf("created = %+v", created)
	}

	if status, _ := api.do("GET", "/api/v1/churches/"+created.ID, "", nil); status != http.StatusNotFound {
		t.Fatalf("anonymous draft get = %d", status)
	}

	status, env = api.do("POST", "/api/v1/churches/"+created.ID+"/publish", owner, nil)
	if status != http.StatusOK {
		t.Fatalf("publish = %d %+v", status, env)
	}
	if got := decode[churchBody](t, env.Data); got.Slug != "tokyo-baptist-church" || got.Status != "PUBLISHED" {
		t.Fatalf("published = %+v", got)
	}

	status, env = api.do("POST", "/api/v1/churches/"+created.ID+"/verify", owner, nil)
	if status != http.StatusForbidden || env.Extensions.Code != "AUTHORIZATION_ERROR" {
		t.Fatalf("owner verify = %d %+v", status, env)
	}
	status, env = api.do("POST", "/api/v1/churches/"+created.ID+"/verify", admin, nil)
	if status != http.StatusOK || decode[churchBody](t, env.Data).Status != "VERIFIED" {
		t.Fatalf("admin verify = %d %+v", status, env)
	}

	status, env = api.do("GET", "/api/v1/churches/slug/tokyo-baptist-church", "", nil)
	if status != http.StatusOK || decode[churchBody](t, env.Data).ID != created.ID {
		t.Fatalf("by slug = %d %+v", status, env)
	}

	status, env = api.do("GET", "/api/v1/churches?page=1&limit=5", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list = %d", status)
	}
	page := decode[struct {
		Items []churchBody `json:"items"`
		Meta  struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}](t, env.Data)
	if page.Meta.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("page = %+v", page)
	}

	status, env = api.do("POST", "/api/v1/churches/"+created.ID+"/reviews", visitor, map[string]string{"content": "Warm welcome and great music."})
	if status != http.StatusCreated {
		t.Fatalf("submit review = %d %+v", status, env)
	}
	reviewID := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	status, env = api.do("POST", "/api/v1/reviews/"+reviewID+"/moderate", visitor, map[string]string{"decision": "APPROVE"})
	if status != http.StatusForbidden {
		t.Fatalf("visitor moderate = %d %+v", status, env)
	}
	status, env = api.do("POST", "/api/v1/reviews/"+reviewID+"/moderate", owner, map[string]string{"decision": "APPROVE"})
	if status != http.StatusOK {
		t.Fatalf("owner moderate = %d %+v", status, env)
	}
	status, env = api.do("POST", "/api/v1/reviews/"+reviewID+"/respond", owner, map[string]string{"content": "Thanks for joining us!"})
	if status != http.StatusOK {
		t.Fatalf("respond = %d %+v", status, env)
	}
	if got := decode[struct {
		Status     string `json:"status"`
		BaseStatus string `json:"baseStatus"`
	}](t, env.Data); got.Status != "RESPONDED" || got.BaseStatus != "APPROVED" {
		t.Fatalf("responded = %+v", got)
	}

	if status, _ := api.do("DELETE", "/api/v1/churches/"+created.ID, owner, nil); status != http.StatusForbidden {
		t.Fatalf("owner delete = %d", status)
	}
	if status, _ := api.do("DELETE", "/api/v1/churches/"+created.ID, admin, nil); status != http.StatusOK {
		t.Fatalf("admin delete = %d", status)
	}
}

func TestDonationEndpoints(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	donor := token(t, "donor", "USER")
	admin := token(t, "admin", "ADMIN")

	status, env := api.do("POST", "/api/v1/donations", donor, map[string]any{"amount": 99.5})
	if status != http.StatusBadRequest || env.Extensions.Code != "VALIDATION_ERROR" {
		t.Fatalf("fractional amount = %d %+v", status, env)
	}

	status, env = api.do("POST", "/api/v1/donations", donor, map[string]any{
		"amount":                5000,
		"stripePaymentIntentId": "pi_77",
		"metadata":              map[string]any{"completedAt": "kept"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %+v", status, env)
	}
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	if status, _ := api.do("POST", "/api/v1/donations/"+id+"/complete", donor, nil); status != http.StatusForbidden {
		t.Fatalf("donor complete = %d", status)
	}

	status, env = api.do("POST", "/api/v1/donations/payment-intents/pi_77/complete", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("complete by intent = %d %+v", status, env)
	}

	status, env = api.do("POST", "/api/v1/donations/"+id+"/fail", admin, map[string]string{"reason": "late decline"})
	if status != http.StatusBadRequest || env.Error != "Only pending donations can be failed" {
		t.Fatalf("fail completed = %d %+v", status, env)
	}

	status, env = api.do("POST", "/api/v1/donations/"+id+"/refund", admin, map[string]string{"stripeRefundId": "re_1"})
	if status != http.StatusOK {
		t.Fatalf("refund = %d %+v", status, env)
	}
	refunded := decode[struct {
		Status       string         `json:"status"`
		RefundReason *string        `json:"refundReason"`
		Metadata     map[string]any `json:"metadata"`
	}](t, env.Data)
	if refunded.Status != "REFUNDED" || refunded.RefundReason != nil || refunded.Metadata["completedAt"] != "kept" {
		t.Fatalf("refunded = %+v", refunded)
	}

	status, env = api.do("GET", "/api/v1/donations/me", donor, nil)
	if status != http.StatusOK {
		t.Fatalf("list mine = %d", status)
	}

	if status, _ := api.do("GET", "/api/v1/donations/"+id, token(t, "someone", "USER"), nil); status != http.StatusNotFound {
		t.Fatalf("foreign donation get = %d", status)
	}
}

func TestAuthEndpoints(t *testing.T) {
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	api := newTestAPI(t, func() error { return nil })

	status, env := api.do("POST", "/api/v1/auth/register", "", map[string]string{
		"email": "member@example.com", "name": "Member", "password": "password1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register = %d %+v", status, env)
	}

	status, _ = api.do("POST", "/api/v1/auth/login", "", map[string]string{"email": "member@example.com", "password": "nope-nope"})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login = %d", status)
	}

	status, env = api.do("POST", "/api/v1/auth/login", "", map[string]string{"email": "member@example.com", "password": "password1"})
	if status != http.StatusOK {
		t.Fatalf("login = %d %+v", status, env)
	}
	tok := decode[struct {
		AccessToken string `json:"accessToken"`
	}](t, env.Data).AccessToken

	status, env = api.do("GET", "/api/v1/auth/me", tok, nil)
	if status != http.StatusOK {
		t.Fatalf("me = %d %+v", status, env)
	}
}

func TestHealth(t *testing.T) {
	healthy := newTestAPI(t, func() error { return nil })
	if status, _ := healthy.do("GET", "/health", "", nil); status != http.StatusOK {
		t.Fatalf("healthy = %d", status)
	}

	down := newTestAPI(t, func() error { return errors.New("db down") })
	if status, _ := down.do("GET", "/api/v1/health", "", nil); status != http.StatusServiceUnavailable {
		t.Fatalf("down = %d", status)
	}
}

func TestUserEndpoints(t *testing.T) {
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	api := newTestAPI(t, func() error { return nil })

	status, env := api.do("POST", "/api/v1/auth/register", "", map[string]string{
		"email": "pastor@example.com", "name": "Pastor", "password": "password1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register = %d %+v", status, env)
	}
	reg := decode[struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}](t, env.Data)

	adminTok := token(t, "admin1", "ADMIN")

	if status, _ := api.do("GET", "/api/v1/users", reg.AccessToken, nil); status != http.StatusForbidden {
		t.Fatalf("list as user = %d", status)
	}
	if status, env := api.do("GET", "/api/v1/users", adminTok, nil); status != http.StatusOK {
		t.Fatalf("list as admin = %d %+v", status, env)
	}

	status, env = api.do("PUT", "/api/v1/users/"+reg.User.ID, adminTok, map[string]string{"role": "PASTOR"})
	if status != http.StatusBadRequest || env.Extensions.Code != "VALIDATION_ERROR" {
		t.Fatalf("bad role = %d %+v", status, env)
	}
	status, env = api.do("PUT", "/api/v1/users/"+reg.User.ID, adminTok, map[string]string{"role": "CHURCH_ADMIN"})
	if status != http.StatusOK {
		t.Fatalf("promote = %d %+v", status, env)
	}

	status, _ = api.do("PUT", "/api/v1/profile/password", reg.AccessToken, map[string]string{
		"oldPassword": "wrong-one", "newPassword": "password2",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("wrong old password = %d", status)
	}
	status, env = api.do("PUT", "/api/v1/profile/password", reg.AccessToken, map[string]string{
		"oldPassword": "password1", "newPassword": "password2",
	})
	if status != http.StatusOK {
		t.Fatalf("change password = %d %+v", status, env)
	}

	if status, _ := api.do("DELETE", "/api/v1/users/"+reg.User.ID, adminTok, nil); status != http.StatusOK {
		t.Fatalf("delete = %d", status)
	}
	if status, env := api.do("DELETE", "/api/v1/users/"+reg.User.ID, adminTok, nil); status != http.StatusNotFound || env.Extensions.Code != "NOT_FOUND" {
		t.Fatalf("delete again = %d %+v", status, env)
	}
}

func TestReviewListingVisibility(t *testing.T) {
	api := newTestAPI(t, func() error { return nil })
	owner := token(t, "owner", "USER")
	visitor := token(t, "visitor", "USER")
	moderator := token(t, "moderator", "CHURCH_ADMIN")

	total := func(path, tok string) int64 {
		t.Helper()
		status, env := api.do("GET", path, tok, nil)
		if status != http.StatusOK {
			t.Fatalf("GET %s = %d %+v", path, status, env)
		}
		return decode[struct {
			Meta struct {
				Total int64 `json:"total"`
			} `json:"meta"`
		}](t, env.Data).Meta.Total
	}

	_, env := api.do("POST", "/api/v1/churches", owner, map[string]string{"name": "Hidden Chapel"})
	draftID := decode[churchBody](t, env.Data).ID
	if status, env := api.do("GET", "/api/v1/churches/"+draftID+"/reviews", "", nil); status != http.StatusNotFound || env.Extensions.Code != "NOT_FOUND" {
		t.Fatalf("anonymous draft reviews = %d %+v", status, env)
	}
	if n := total("/api/v1/churches/"+draftID+"/reviews", owner); n != 0 {
		t.Fatalf("owner draft reviews = %d", n)
	}

	_, env = api.do("POST", "/api/v1/churches", owner, map[string]string{"name": "Grace Chapel"})
	churchID := decode[churchBody](t, env.Data).ID
	if status, env := api.do("POST", "/api/v1/churches/"+churchID+"/publish", owner, nil); status != http.StatusOK {
		t.Fatalf("publish = %d %+v", status, env)
	}

	status, env := api.do("POST", "/api/v1/churches/"+churchID+"/reviews", visitor, map[string]string{"content": "Warm welcome and great music."})
	if status != http.StatusCreated {
		t.Fatalf("submit review = %d %+v", status, env)
	}
	reviewID := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	reviewsPath := "/api/v1/churches/" + churchID + "/reviews"
	if n := total(reviewsPath, ""); n != 0 {
		t.Fatalf("anonymous sees %d pending reviews", n)
	}
	if n := total(reviewsPath, visitor); n != 0 {
		t.Fatalf("visitor sees %d pending reviews", n)
	}
	if n := total(reviewsPath, owner); n != 1 {
		t.Fatalf("owner sees %d reviews", n)
	}

	status, env = api.do("POST", "/api/v1/reviews/"+reviewID+"/moderate", moderator, map[string]string{"decision": "APPROVE"})
	if status != http.StatusOK {
		t.Fatalf("church admin moderate = %d %+v", status, env)
	}
	if n := total(reviewsPath, ""); n != 1 {
		t.Fatalf("anonymous sees %d approved reviews", n)
	}
}
