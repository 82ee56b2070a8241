// Package envsubst expands ${NAME} references in configuration text.
//
// Only the braced form is recognised. A bare $ is left alone, so values such
// as "$schema" or "$5/month" survive a load unchanged.
package envsubst

import (
	"os"
	"regexp"
	"slices"
)

var reference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces every ${NAME} whose variable is set, including set to the
// empty string. References to unset variables are kept verbatim and their
// names are returned, sorted and without duplicates.
func Expand(s string) (string, []string) {
	var missing []string
	out := reference.ReplaceAllStringFunc(s, func(m string) string {
		name := reference.FindStringSubmatch(m)[1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
		return m
	})
	slices.Sort(missing)
	return out, missing
}
