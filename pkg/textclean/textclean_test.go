package textclean_test

import (
	"testing"

	"github.com/fastygo/taskup/pkg/textclean"
)

func TestPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Entregar informe", "Entregar informe"},
		{"trims", "  Cálculo  ", "Cálculo"},
		{"strips tags", "<b>Física</b> II", "Física II"},
		{"removes script", "<script>alert('x')</script>Tarea", "Tarea"},
		{"keeps ampersand", "Historia & Arte", "Historia & Arte"},
		{"strips attributes", `<a href="javascript:alert(1)">Link</a>`, "Link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textclean.Plain(tt.input); got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainPtr(t *testing.T) {
	if textclean.PlainPtr(nil) != nil {
		t.Error("nil input should stay nil")
	}
	in := " <i>x</i> "
	if got := textclean.PlainPtr(&in); got == nil || *got != "x" {
		t.Errorf("got %v", got)
	}
}
