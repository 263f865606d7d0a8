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
			name:    "construction error",
			code:    "E101",
			wantMsg: "Invalid node tag",
			wantCat: CategoryConstruction,
		},
		{
			name:    "lifecycle error",
			code:    "E201",
			wantMsg: "Component is not mounted",
			wantCat: CategoryLifecycle,
		},
		{
			name:    "reconcile error",
			code:    "E301",
			wantMsg: "Unknown container",
			wantCat: CategoryReconcile,
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
	err := New("E103").WithDetail("child 1 has type chan int")
	want := "E103: Unsupported child type (child 1 has type chan int)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("E402").Wrap(fmt.Errorf("unexpected EOF"))
	if !strings.HasSuffix(wrapped.Error(), ": unexpected EOF") {
		t.Errorf("Error() = %q, want wrapped cause suffix", wrapped.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New("E201")
	err := fmt.Errorf("update counter: %w", New("E201").WithDetail("instance 4"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New("E202")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(Newf(CategoryReconcile, "no code"), Newf(CategoryReconcile, "no code")) {
		t.Error("errors without a code never match by code")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := FromError(cause, "E503")
	if !stderrors.Is(err, cause) {
		t.Error("FromError should keep the cause reachable")
	}
	if FromError(nil, "E503") != nil {
		t.Error("FromError(nil) should be nil")
	}
	same := New("E501")
	if FromError(same, "E503") != same {
		t.Error("FromError should return *Error values unchanged")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E204").Format()
	for _, want := range []string{"ERROR E204: Re-entrant engine call", "Hint: Use Instance.Update"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() = %q, missing %q", out, want)
		}
	}

	if got := New("E501").WithDetail("demo.yaml").FormatCompact(); got != "E501: Scenario has no steps: demo.yaml" {
		t.Errorf("FormatCompact() = %q", got)
	}

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain"))
	if buf.String() != "ERROR plain\n" {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestRegistryCodesHaveCategories(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Category == "" || tmpl.Message == "" {
			t.Errorf("%s: template needs category and message", code)
		}
	}
}
