package apperror

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"churchhub/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   domain.Code
		status int
	}{
		{"validation", domain.NewValidationError("Church name must be between 2 and 200 characters", "name"), domain.CodeValidation, 400},
		{"authorization", domain.NewAuthorizationError("Only platform admins can verify churches", domain.RoleAdmin), domain.CodeAuthorization, 403},
		{"not found", domain.NewNotFoundError("Church", "c1"), domain.CodeNotFound, 404},
		{"conflict", domain.NewConflictError("slug taken", "slug"), domain.CodeConflict, 409},
		{"infrastructure", domain.NewInfrastructureError("db down", errors.New("dial tcp")), domain.CodeInfrastructure, 500},
		{"foreign", errors.New("boom"), domain.CodeInfrastructure, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			te := FromError(tc.err, false)
			if te.Extensions.Code != tc.code {
				t.Fatalf("code = %s, want %s", te.Extensions.Code, tc.code)
			}
			if te.Message != tc.err.Error() {
				t.Fatalf("message = %q", te.Message)
			}
			if got := HTTPStatus(te.Extensions.Code); got != tc.status {
				t.Fatalf("status = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestFromErrorMasksInfrastructureInProd(t *testing.T) {
	te := FromError(domain.NewInfrastructureError("failed to save church", errors.New("secret dsn")), true)
	if te.Message != GenericMessage {
		t.Fatalf("message = %q", te.Message)
	}

	ve := FromError(domain.NewValidationError("Failure reason is required"), true)
	if ve.Message != "Failure reason is required" {
		t.Fatalf("validation message masked: %q", ve.Message)
	}
}

func TestRespond(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Mapper{}.Respond(c, domain.NewNotFoundError("Review", "r1"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var got struct {
		Success    bool   `json:"success"`
		Error      string `json:"error"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Success || got.Error != "Review not found: r1" || got.Extensions.Code != "NOT_FOUND" {
		t.Fatalf("body = %s", body)
	}
}
