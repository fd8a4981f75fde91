package courseValidator

import (
	"coursedesk/middleware"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors turns validator failures into the field -> message map the API returns
func fieldErrors(err error) map[string]string {
	errs := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["body"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		label := strings.ReplaceAll(field, "_", " ")
		if label != "" {
			label = strings.ToUpper(label[:1]) + label[1:]
		}

		switch fe.Tag() {
		case "required":
			errs[field] = fmt.Sprintf("%s is required!", label)
		case "min":
			errs[field] = fmt.Sprintf("%s must have at least %s item(s) or characters!", label, fe.Param())
		case "max":
			errs[field] = fmt.Sprintf("%s must be at most %s characters long!", label, fe.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("%s must be one of: %s!", label, strings.ReplaceAll(fe.Param(), " ", ", "))
		case "gte":
			errs[field] = fmt.Sprintf("%s must be %s or greater!", label, fe.Param())
		case "url":
			errs[field] = fmt.Sprintf("%s must be a valid URL!", label)
		case "unique":
			errs[field] = fmt.Sprintf("%s must not contain duplicates!", label)
		case "uuid":
			errs[field] = fmt.Sprintf("%s must only contain valid ids!", label)
		default:
			errs[field] = fmt.Sprintf("%s is invalid!", label)
		}
	}
	return errs
}

// validateBody runs struct validation and writes the 422 response when it fails
func validateBody(c *fiber.Ctx, reqData interface{}) (bool, error) {
	if err := validate.Struct(reqData); err != nil {
		return false, middleware.ValidationErrorResponse(c, fieldErrors(err))
	}
	return true, nil
}

// pathID reads a uuid path parameter, answering 400 when it is missing or malformed
func pathID(c *fiber.Ctx, param, label string) (string, bool, error) {
	id := strings.TrimSpace(c.Params(param))
	if id == "" {
		return "", false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}
	if err := validate.Var(id, "uuid"); err != nil {
		return "", false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}
	return id, true, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
