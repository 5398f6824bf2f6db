package classic

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeMarkup cleans tenant-authored rich text (field descriptions, step
// intros) down to basic inline formatting before it reaches the template as
// pre-escaped HTML.
func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "br", "span", "code")
		policy.AllowAttrs("class").OnElements("span")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.AllowElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AllowURLSchemes("http", "https", "mailto")
		markupPolicy = policy
	})
	return markupPolicy
}
