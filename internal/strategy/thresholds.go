package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"StockSentinel/internal/model"
)

// ErrInvalidThresholds is returned when the thresholds would make rules ambiguous,
// e.g. rsi_lower >= rsi_upper lets both RSI rules fire together.
var ErrInvalidThresholds = errors.New("invalid alert thresholds")

var validate = validator.New()

// DefaultThresholds returns 70 / 30 / 2.0.
func DefaultThresholds() model.AlertThresholds {
	var th model.AlertThresholds
	_ = defaults.Set(&th)
	return th
}

// ValidateThresholds checks rsi_upper in (rsi_lower, 100), rsi_lower > 0 and volume_spike_factor > 0.
func ValidateThresholds(th model.AlertThresholds) error {
	if err := validate.Struct(th); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidThresholds, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidThresholds, err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}
