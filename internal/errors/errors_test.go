package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "routing error",
			code:    "E100",
			wantMsg: "No route matches path",
			wantCat: CategoryRouting,
		},
		{
			name:    "registry error",
			code:    "E200",
			wantMsg: "Callback group does not exist",
			wantCat: CategoryRegistry,
		},
		{
			name:    "protocol error",
			code:    "E300",
			wantMsg: "Invalid frame",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E100").WithDetail("no route matches /missing")
	want := "E100: No route matches path: no route matches /missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryCLI, "file %q not found", "x.json")
	if plain.Error() != `file "x.json" not found` {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestWrapSupportsErrorsIs(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("E101").Wrap(sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}

	outer := fmt.Errorf("navigating: %w", err)
	if Code(outer) != "E101" {
		t.Errorf("Code() = %q, want E101", Code(outer))
	}
	if Code(sentinel) != "" {
		t.Errorf("Code() of plain error = %q, want empty", Code(sentinel))
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E100") != nil {
		t.Error("FromError(nil) should be nil")
	}

	existing := New("E200")
	if got := FromError(fmt.Errorf("ctx: %w", existing), "E100"); got != existing {
		t.Error("FromError should return the wrapped *Error unchanged")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E301")
	if got.Code != "E301" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E100").
		WithDetail("no route matches /missing").
		WithSuggestion("Register a route for the path")

	out := err.Format()
	for _, want := range []string{
		"ERROR E100: No route matches path",
		"no route matches /missing",
		"Hint: Register a route for the path",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}

	if err.FormatCompact() != "E100: No route matches path" {
		t.Errorf("FormatCompact() = %q", err.FormatCompact())
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("wrapped: %w", New("E402")))
	if !strings.Contains(buf.String(), "ERROR E402: Invalid port") {
		t.Errorf("Fprint() = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "plain failure") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 9)
	for _, l := range lines {
		if len(l) > 9 {
			t.Errorf("line %q longer than width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestAllCodesHaveTemplates(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has incomplete template: %+v", code, tmpl)
		}
	}
}
