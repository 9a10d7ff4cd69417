package inputval_test

import (
	"strings"
	"testing"

	"github.com/autoatlas-mx/autoatlas/internal/app/system/inputval"
)

type sampleInput struct {
	Name   string `validate:"required,max=120" label:"Name"`
	Email  string `validate:"required,email" label:"Email"`
	Status string `validate:"omitempty,oneof=new contacted" label:"Status"`
}

func TestValidate_OK(t *testing.T) {
	in := sampleInput{Name: "Ana", Email: "ana@example.com"}
	res := inputval.Validate(in)
	if res.HasErrors {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.First != "" {
		t.Errorf("First = %q, want empty", res.First)
	}
}

func TestValidate_Required(t *testing.T) {
	in := sampleInput{Email: "ana@example.com"}
	res := inputval.Validate(in)
	if !res.HasErrors {
		t.Fatal("expected a validation error")
	}
	if res.First != "Name is required" {
		t.Errorf("First = %q, want %q", res.First, "Name is required")
	}
	if len(res.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(res.Errors))
	}
}

func TestValidate_Email(t *testing.T) {
	in := sampleInput{Name: "Ana", Email: "not-an-email"}
	res := inputval.Validate(in)
	if !res.HasErrors {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(res.First, "Email") {
		t.Errorf("message should name the label, got %q", res.First)
	}
}

func TestValidate_OneOf(t *testing.T) {
	in := sampleInput{Name: "Ana", Email: "ana@example.com", Status: "bogus"}
	res := inputval.Validate(in)
	if !res.HasErrors {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(res.First, "one of") {
		t.Errorf("unexpected message %q", res.First)
	}
}

func TestValidate_MultipleFailures(t *testing.T) {
	res := inputval.Validate(sampleInput{Status: "bogus"})
	if !res.HasErrors {
		t.Fatal("expected validation errors")
	}
	if len(res.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(res.Errors), res.Errors)
	}
	if res.First != res.Errors[0] {
		t.Errorf("First %q does not match Errors[0] %q", res.First, res.Errors[0])
	}
}
