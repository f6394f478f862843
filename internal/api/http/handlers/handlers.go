package handlers

import (
	"errors"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/auth"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

type validatable interface {
	Validate() error
}

// parseBody decodes a JSON body into v. An empty body leaves v zero.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// parseAndValidate decodes the body and runs its ozzo rules. A failed rule is reported with
// message, or with the rule errors when message is empty.
func parseAndValidate(c *fiber.Ctx, v validatable, message string) error {
	if err := parseBody(c, v); err != nil {
		return err
	}
	err := v.Validate()
	if err == nil {
		return nil
	}
	if message == "" {
		message = err.Error()
	}
	return apperrors.NewValidationError(message, validationDetails(err))
}

func validationDetails(err error) map[string]any {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	fields := make(map[string]string, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		fields[field] = fieldErr.Error()
	}
	return map[string]any{"fields": fields}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid %s", name), nil)
	}
	return id, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// currentUser returns the authenticated caller, or nil for anonymous requests.
func currentUser(c *fiber.Ctx) *auth.AuthUser {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return nil
	}
	return user
}

func requireUser(c *fiber.Ctx) (*auth.AuthUser, error) {
	user := currentUser(c)
	if user == nil {
		return nil, apperrors.NewUnauthorized("unauthorized")
	}
	return user, nil
}
