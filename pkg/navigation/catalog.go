package navigation

import (
	"fmt"
	"strings"
)

// Catalog is a static Translator keyed by locale, then caption. A locale such
// as "fr-CA" falls back to "fr". Arguments are applied with fmt.Sprintf.
type Catalog map[string]map[string]string

var _ Translator = Catalog(nil)

// Translate returns the caption for key in locale.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		if text, ok := c[candidate][key]; ok && strings.TrimSpace(text) != "" {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...), nil
			}
			return text, nil
		}
	}
	return "", fmt.Errorf("navigation: no %q translation for %q", locale, key)
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if base, _, found := strings.Cut(locale, "-"); found && base != "" {
		chain = append(chain, base)
	}
	return chain
}
