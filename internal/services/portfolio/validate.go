package portfolio

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/models"
)

// ValidationError is a field-level validation failure. It blocks the
// specific action (save) without aborting anything else.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a portfolio for field-level problems: empty name,
// weights outside 0-100, cash outside 0-100, non-positive starting value,
// duplicate tickers. A non-100 weight sum is a warning state in the UI,
// not an error, so it is not checked here.
func Validate(p *models.Portfolio) []*ValidationError {
	var errs []*ValidationError

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "portfolio name is required"})
	}
	if p.CashPercent < 0 || p.CashPercent > 100 {
		errs = append(errs, &ValidationError{Field: "cash_percent", Message: "cash percent must be between 0 and 100"})
	}
	if p.StartingValue < 0 {
		errs = append(errs, &ValidationError{Field: "starting_value", Message: "starting value must be positive"})
	}

	seen := make(map[string]bool, len(p.Holdings))
	for _, h := range p.Holdings {
		ticker := strings.ToUpper(h.Ticker)
		if seen[ticker] {
			errs = append(errs, &ValidationError{
				Field:   "holdings",
				Message: fmt.Sprintf("duplicate ticker '%s'", h.Ticker),
			})
		}
		seen[ticker] = true

		if h.WeightPercent < 0 || h.WeightPercent > 100 {
			errs = append(errs, &ValidationError{
				Field:   "holdings",
				Message: fmt.Sprintf("weight for '%s' must be between 0 and 100", h.Ticker),
			})
		}
	}

	return errs
}
