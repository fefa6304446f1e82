package validators

import (
	"strings"
	"testing"

	pkgerrors "github.com/mediastash/mediastash-backend/pkg/errors"
)

type testForm struct {
	Title        string `form:"videoName" validate:"omitempty,max=10"`
	UploaderName string `form:"username" validate:"omitempty,max=10"`
}

func TestCheckFormAcceptsEmptyOptionalFields(t *testing.T) {
	if err := CheckForm(testForm{}); err != nil {
		t.Fatalf("expected empty optional fields to pass, got %v", err)
	}
}

func TestCheckFormRejectsOversizedField(t *testing.T) {
	err := CheckForm(testForm{Title: strings.Repeat("x", 11)})
	if err == nil {
		t.Fatal("expected an error for an oversized title")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, ok := details["videoName"]; !ok {
		t.Fatalf("expected the form tag name in details, got %v", details)
	}
}
