package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tyler-technologies/go-provision/internal/models"
	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
)

var validate = validator.New()

// ValidateInstanceRequest rejects incomplete requests and environments outside
// dev, test, staging, prod and qa.
func ValidateInstanceRequest(req models.InstanceRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return provisionerrors.ErrInvalidInstanceRequest{Err: err}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return provisionerrors.ErrInvalidInstanceRequest{Err: errors.New(strings.Join(msgs, "; "))}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of [%s]", fe.Namespace(), fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Namespace(), fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
}
