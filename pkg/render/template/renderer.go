package template

import (
	"io"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/filters"
)

// TemplateRenderer is the seam between the preview pipeline and a concrete
// Liquid evaluator.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn filters.Func) error
	GlobalContext(data any) error
}
