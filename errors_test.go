package heif_test

import (
	"errors"
	"strings"
	"testing"

	heif "github.com/GreatValueCreamSoda/goheif"
)

func TestErrorMessage(t *testing.T) {
	err := &heif.Error{
		Code:    heif.ErrorCodeInvalidInput,
		Subcode: heif.SuberrorNoFtypBox,
		Message: "No 'ftyp' box",
	}
	if err.Error() != "No 'ftyp' box" {
		t.Fatalf("Error() = %q", err.Error())
	}

	var target *heif.Error
	if !errors.As(error(err), &target) || target.Code != heif.ErrorCodeInvalidInput {
		t.Fatal("errors.As lost the error details")
	}
}

func TestUnsupportedVersionErrorMessage(t *testing.T) {
	err := &heif.UnsupportedVersionError{Feature: "region annotations", Minimum: "1.16"}
	msg := err.Error()
	if !strings.Contains(msg, "region annotations") || !strings.Contains(msg, "1.16") {
		t.Fatalf("message = %q", msg)
	}
}
