// Package apperror turns domain errors into transport errors.
package apperror

import (
	"churchhub/internal/core/domain"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GenericMessage replaces infrastructure error messages in production
const GenericMessage = "An unexpected error occurred. Please try again later."

// TransportError is the client-facing shape of a domain error
type TransportError struct {
	Message    string     `json:"message"`
	Extensions Extensions `json:"extensions"`
}

// Extensions carries the error code next to the message
type Extensions struct {
	Code domain.Code `json:"code"`
}

func (e TransportError) Error() string { return e.Message }

// FromError converts err into a TransportError.
// Validation, authorization, not-found and conflict messages are shown verbatim.
// Anything else is an infrastructure failure and is masked when prod is set.
func FromError(err error, prod bool) TransportError {
	code := domain.CodeOf(err)
	message := err.Error()
	if code == domain.CodeInfrastructure && prod {
		message = GenericMessage
	}
	return TransportError{
		Message:    message,
		Extensions: Extensions{Code: code},
	}
}

// HTTPStatus maps an error code to an HTTP status
func HTTPStatus(code domain.Code) int {
	switch code {
	case domain.CodeValidation:
		return fiber.StatusBadRequest
	case domain.CodeAuthorization:
		return fiber.StatusForbidden
	case domain.CodeNotFound:
		return fiber.StatusNotFound
	case domain.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Mapper writes domain errors as JSON responses
type Mapper struct {
	Prod bool
}

// Respond writes err with the status matching its code
func (m Mapper) Respond(c *fiber.Ctx, err error) error {
	te := FromError(err, m.Prod)
	return response.ErrorWithCode(c, HTTPStatus(te.Extensions.Code), te.Message, string(te.Extensions.Code))
}
