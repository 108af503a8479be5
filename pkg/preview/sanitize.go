package preview

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	previewPolicyOnce sync.Once
	previewPolicy     *bluemonday.Policy
)

// sanitizer keeps section styling (style elements, style and class
// attributes, forms) and removes scripts and event handlers.
func sanitizer() *bluemonday.Policy {
	previewPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowUnsafe(true)
		policy.AllowElements("style")
		policy.AllowElementsContent("style")
		policy.AllowStyling()
		policy.AllowAttrs("style", "id").Globally()
		policy.AllowDataAttributes()

		policy.AllowElements("form", "label", "input", "button", "select", "option", "textarea")
		policy.AllowAttrs("method", "action").OnElements("form")
		policy.AllowAttrs("type", "name", "value", "placeholder", "disabled").
			OnElements("input", "button", "select", "option", "textarea")
		policy.AllowAttrs("for").OnElements("label")

		policy.AllowElements("picture", "source", "video", "header", "footer", "nav", "main")
		policy.AllowAttrs("srcset", "sizes", "media").OnElements("source", "img")
		policy.AllowAttrs("loading").OnElements("img")

		previewPolicy = policy
	})
	return previewPolicy
}
