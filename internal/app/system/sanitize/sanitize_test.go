package sanitize_test

import (
	"testing"

	"github.com/inovatehub/hackhub/internal/app/system/sanitize"
)

func TestText_Empty(t *testing.T) {
	if got := sanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainText(t *testing.T) {
	if got := sanitize.Text("Hello, World!"); got != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_StripsTags(t *testing.T) {
	if got := sanitize.Text("<p>hi <strong>there</strong></p>"); got != "hi there" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestText_StripsScript(t *testing.T) {
	got := sanitize.Text("hello<script>alert('xss')</script>")
	if got != "hello" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestText_TrimsWhitespace(t *testing.T) {
	if got := sanitize.Text("  spaced out  "); got != "spaced out" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}
