package utils

import (
	"fmt"
	"strings"
)

// EnumValidator restricts a string field to a fixed value set. The error
// names the field and the rejected value so schema failures read well in
// logs.
func EnumValidator(fieldName string, allowed ...string) func(string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(s string) error {
		if _, ok := set[s]; ok {
			return nil
		}
		return fmt.Errorf("%s: %q is not one of %s", fieldName, s, strings.Join(allowed, ", "))
	}
}
