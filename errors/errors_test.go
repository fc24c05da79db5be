package errors

import (
	"fmt"
	"testing"
)

func TestLauncherError(t *testing.T) {
	err := New(ErrCodePackNotFound, "pack not found")
	if err.Code != ErrCodePackNotFound {
		t.Errorf("expected code %s, got %s", ErrCodePackNotFound, err.Code)
	}

	cause := fmt.Errorf("unexpected EOF")
	wrapped := Wrap(cause, ErrCodeParseError, "parse failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeParseError) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodePackNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	detailed := err.WithDetail("package", "com.x").WithDetail("attempt", 2)
	if detailed.Details["package"] != "com.x" {
		t.Error("WithDetail should add details")
	}
}

func TestIsThroughFmtWrapping(t *testing.T) {
	inner := DrawableNotFound("com.pack", "icon_x")
	outer := fmt.Errorf("resolve: %w", inner)

	if !Is(outer, ErrCodeDrawableNotFound) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeDrawableNotFound {
		t.Errorf("GetCode = %s", GetCode(outer))
	}
	if Is(nil, "") {
		t.Error("Is(nil) must be false")
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("plain errors carry no code")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := PackNotFound("com.pack")
	if err.Code != ErrCodePackNotFound {
		t.Errorf("expected code %s, got %s", ErrCodePackNotFound, err.Code)
	}
	if err.Details["package"] != "com.pack" {
		t.Error("PackNotFound should include package detail")
	}

	err = DrawableNotFound("com.pack", "icon_x")
	if err.Details["drawable"] != "icon_x" {
		t.Error("DrawableNotFound should include drawable detail")
	}

	err = ParseFailed("com.pack", fmt.Errorf("bad token"))
	if err.Code != ErrCodeParseError || err.Cause == nil {
		t.Error("ParseFailed should wrap its cause")
	}

	err = ImportInvalid("unknown version 2")
	if err.Code != ErrCodeImportValidation {
		t.Errorf("expected code %s, got %s", ErrCodeImportValidation, err.Code)
	}
}
