package prompt

import "github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/fonts"

// Option configures an Editor.
type Option func(*Editor)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithFontRegistry sets the fonts offered by font_picker settings.
func WithFontRegistry(registry *fonts.Registry) Option {
	return func(e *Editor) {
		if registry != nil {
			e.fonts = registry
		}
	}
}

// WithPageSize limits how many select options are shown at once.
func WithPageSize(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.pageSize = n
		}
	}
}
