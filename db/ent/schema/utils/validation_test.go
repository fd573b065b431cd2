package utils

import (
	"strings"
	"testing"
)

func TestEnumValidator(t *testing.T) {
	validate := EnumValidator("status", "UPLOADED", "PARSING")

	if err := validate("UPLOADED"); err != nil {
		t.Errorf("UPLOADED: got %v, want nil", err)
	}
	err := validate("DONE")
	if err == nil {
		t.Fatal("DONE: got nil, want error")
	}
	for _, part := range []string{"status", `"DONE"`, "UPLOADED"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q missing %q", err, part)
		}
	}
}
