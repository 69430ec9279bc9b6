package config

import "github.com/lgbarn/movetree-go/internal/errors"

// minLineLength is the narrowest wrap width that still fits "N... move".
const minLineLength = 16

// OutputConfig holds settings related to linearized output.
type OutputConfig struct {
	// MaxLineLength wraps output at this width; 0 disables wrapping
	MaxLineLength uint `mapstructure:"max_line_length"`

	// KeepComments controls whether {comments} are written
	KeepComments bool `mapstructure:"keep_comments"`

	// KeepGlyphs controls whether annotation symbols (!, ?!, ...) are written
	KeepGlyphs bool `mapstructure:"keep_glyphs"`

	// KeepVariations controls whether (variations) are written
	KeepVariations bool `mapstructure:"keep_variations"`

	// JSONFormat writes the tree as JSON instead of movetext
	JSONFormat bool `mapstructure:"json"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:  80,
		KeepComments:   true,
		KeepGlyphs:     true,
		KeepVariations: true,
	}
}

// Validate rejects wrap widths too narrow to hold a numbered move.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength != 0 && o.MaxLineLength < minLineLength {
		return errors.Wrapf(errors.ErrInvalidConfig, "max line length %d is below %d", o.MaxLineLength, minLineLength)
	}
	return nil
}
