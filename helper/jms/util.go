package jms

import "strings"

// filterBooleanConfigs copies the settings under prefix into defaults, with
// the prefix stripped.
func filterBooleanConfigs(defaults map[string]bool, prefix string, cs map[string]bool, caseSensitive bool) map[string]bool {
	for key, value := range cs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}

		k := key[len(prefix):]
		if !caseSensitive {
			k = strings.ToLower(k)
		}

		defaults[k] = value
	}

	return defaults
}
