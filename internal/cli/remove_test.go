package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdinConfirm(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"crlf line ending", "y\r\n", true},
		{"padded y declines", "  y  \n", false},
		{"yes is not y", "yes\n", false},
		{"n declines", "n\n", false},
		{"empty line declines", "\n", false},
		{"eof declines", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			confirm := stdinConfirm(strings.NewReader(c.input), &out)

			got, err := confirm("Remove? (y/N): ")
			if err != nil {
				t.Fatalf("confirm error: %v", err)
			}
			if got != c.want {
				t.Errorf("confirm(%q) = %v, want %v", c.input, got, c.want)
			}
			if !strings.Contains(out.String(), "Remove?") {
				t.Error("prompt was not written")
			}
		})
	}
}
