package config

import "github.com/agbru/collatz/internal/collatz"

// ApplyWindowLimits clamps the requested table width to what an input of the
// given number of words can use. It only modifies the LUT field.
func ApplyWindowLimits(cfg AppConfig, words int) AppConfig {
	cfg.LUT = collatz.ClampWidth(cfg.LUT, words)
	return cfg
}
