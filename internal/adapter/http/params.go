package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/asteroid-hazard-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type asteroidsQuery struct {
	Days *int `validate:"required,min=1,max=7"`
}

// parseDays reads the days query parameter. Failures are *domain.ValidationError.
func parseDays(r *http.Request) (int, error) {
	var q asteroidsQuery
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if errors.Is(err, strconv.ErrRange) {
			return 0, &domain.ValidationError{Message: domain.MsgDaysOutOfRange}
		}
		if err != nil {
			return 0, &domain.ValidationError{Message: domain.MsgDaysNotInteger}
		}
		q.Days = &n
	}

	if err := validate.Struct(q); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "required" {
			return 0, &domain.ValidationError{Message: domain.MsgDaysRequired}
		}
		return 0, &domain.ValidationError{Message: domain.MsgDaysOutOfRange}
	}
	return *q.Days, nil
}
