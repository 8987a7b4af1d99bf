package validation

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Echo adapts go-playground/validator to echo's Validator interface so
// handlers can call c.Validate on bound request structs.
type Echo struct {
	validate *validator.Validate
}

func NewEcho() *Echo {
	return &Echo{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Echo) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
