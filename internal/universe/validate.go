package universe

import "fmt"

// ValidationError marks a configuration constraint violation. Loading
// stops on the first one; the process must not start with a broken
// universe or rule table.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints of a resolved configuration.
func Validate(cfg *Config) error {
	if cfg.Universe == nil || cfg.Universe.Count() == 0 {
		return ValidationError{"universe", "at least one listing is required"}
	}

	for symbol, listing := range cfg.Universe.Listings {
		if symbol == "" {
			return ValidationError{"universe", "empty symbol"}
		}
		if listing.Company == "" {
			return ValidationError{fmt.Sprintf("universe.%s.company", symbol), "required"}
		}
		if listing.Ratio <= 0 {
			return ValidationError{fmt.Sprintf("universe.%s.ratio", symbol), "must be > 0"}
		}
	}

	// Momentum and value normalize via a plain clamp, which only works when
	// the rule weights sum to exactly the score ceiling.
	if got := cfg.Momentum.MaxScore(); got != 10 {
		return ValidationError{"rules.momentum", fmt.Sprintf("rule points must sum to 10, got %d", got)}
	}
	if got := cfg.Value.MaxScore(); got != 10 {
		return ValidationError{"rules.value", fmt.Sprintf("rule points must sum to 10, got %d", got)}
	}

	// Defensive divides by its raw maximum, which therefore must be positive.
	if cfg.Defensive.MaxScore() <= 0 {
		return ValidationError{"rules.defensive", "rule points must sum to a positive maximum"}
	}

	if cfg.Momentum.RSIMin >= cfg.Momentum.RSIMax {
		return ValidationError{"rules.momentum", "rsi_min must be < rsi_max"}
	}
	if cfg.Defensive.BetaLowThreshold >= cfg.Defensive.BetaMediumThreshold {
		return ValidationError{"rules.defensive", "beta_low_threshold must be < beta_medium_threshold"}
	}
	if cfg.Defensive.VolatilityLowThreshold >= cfg.Defensive.VolatilityMediumThreshold {
		return ValidationError{"rules.defensive", "volatility_low_threshold must be < volatility_medium_threshold"}
	}
	if cfg.Defensive.DebtLowThreshold >= cfg.Defensive.DebtMediumThreshold {
		return ValidationError{"rules.defensive", "debt_low_threshold must be < debt_medium_threshold"}
	}
	if len(cfg.Defensive.DefensiveSectors) == 0 {
		return ValidationError{"rules.defensive.defensive_sectors", "at least one sector is required"}
	}

	return nil
}
