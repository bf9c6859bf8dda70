package validation_test

import (
	"testing"

	"github.com/litebase/memvfs/internal/validation"
)

type input struct {
	Name string `json:"name" validate:"required"`
	Size int64  `json:"size" validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	errors := validation.Validate(input{Name: "memvfs", Size: 1}, nil)

	if errors != nil {
		t.Errorf("Validate() failed, expected nil, got %v", errors)
	}
}

func TestValidateUsesMessages(t *testing.T) {
	errors := validation.Validate(input{}, map[string]string{
		"name.required": "The name field is required",
	})

	if len(errors) != 2 {
		t.Fatalf("Validate() failed, expected 2 fields, got %v", errors)
	}

	if errors["name"][0] != "The name field is required" {
		t.Errorf("Validate() failed, expected registered message, got %q", errors["name"][0])
	}

	if len(errors["size"]) != 1 || errors["size"][0] == "" {
		t.Errorf("Validate() failed, expected fallback message for size, got %v", errors["size"])
	}
}
