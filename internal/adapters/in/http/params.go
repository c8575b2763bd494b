package http

import (
	"strings"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// AccountHeader carries the account id set by the upstream gateway.
const AccountHeader = "X-Account-ID"

func accountID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Request().Header.Get(AccountHeader))
	if id == "" {
		return "", errs.NewValueIsRequiredError(AccountHeader)
	}
	return id, nil
}

// uuidParam binds a path parameter with the simple style used by the
// document.
func uuidParam(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	if err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		}); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func uuidValue(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// queryParam binds a form-style query parameter into dest. Optional
// parameters need a pointer to a pointer.
func queryParam(c echo.Context, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

// bindBody decodes and validates a JSON body.
func bindBody(c echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err := c.Validate(dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
