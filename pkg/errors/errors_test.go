package errors

import (
	"errors"
	"testing"
)

// Test codes for testing
var (
	testCode   = MustNewCode("test.code")
	lookupCode = MustNewCode("test.row_missing")
)

func TestNew(t *testing.T) {
	err := New(CommonInternal, "test failure", nil)

	if err.Message != "test failure" {
		t.Errorf("Expected message 'test failure', got '%s'", err.Message)
	}

	if err.Code.String() != "common.internal" {
		t.Errorf("Expected code 'common.internal', got '%s'", err.Code.String())
	}

	if err.Cause != nil {
		t.Error("Expected nil cause")
	}

	if err.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}

	if len(err.Stack) == 0 {
		t.Error("Expected stack trace to be captured")
	}
}

func TestNewWithCause(t *testing.T) {
	originalErr := errors.New("original failure")
	err := New(testCode, "wrapped failure", originalErr)

	if err.Message != "wrapped failure" {
		t.Errorf("Expected message 'wrapped failure', got '%s'", err.Message)
	}

	if err.Code.String() != "test.code" {
		t.Errorf("Expected code 'test.code', got '%s'", err.Code.String())
	}

	if err.Cause != originalErr {
		t.Error("Expected cause to be set to original error")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CommonInternal, "test failure with %s", "formatting")

	expected := "test failure with formatting"
	if err.Message != expected {
		t.Errorf("Expected message '%s', got '%s'", expected, err.Message)
	}

	if err.Code.String() != "common.internal" {
		t.Errorf("Expected code 'common.internal', got '%s'", err.Code.String())
	}

	if err.Cause != nil {
		t.Error("Expected Newf to leave cause nil")
	}
}

func TestAddContext(t *testing.T) {
	err := New(testCode, "test failure", nil).
		AddContext("key1", "value1").
		AddContext("key2", "value2")

	if err.Context["key1"] != "value1" {
		t.Errorf("Expected context key1='value1', got '%s'", err.Context["key1"])
	}

	if err.Context["key2"] != "value2" {
		t.Errorf("Expected context key2='value2', got '%s'", err.Context["key2"])
	}
}

func TestWithCause(t *testing.T) {
	originalErr := errors.New("original failure")
	err := New(testCode, "test failure", nil).WithCause(originalErr)

	if err.Cause != originalErr {
		t.Error("Expected cause to be set to original error")
	}
}

func TestErrorString(t *testing.T) {
	err := New(testCode, "test failure", nil)
	expected := "test failure"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}

	originalErr := errors.New("original failure")
	err = New(testCode, "wrapped failure", originalErr)
	expected = "wrapped failure: original failure"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	originalErr := errors.New("original failure")
	err := New(testCode, "wrapped failure", originalErr)

	if err.Unwrap() != originalErr {
		t.Error("Expected Unwrap to return original error")
	}

	if !errors.Is(err, originalErr) {
		t.Error("Expected errors.Is to see through the wrap")
	}
}

func TestCaptureStackTrace(t *testing.T) {
	err := New(testCode, "test failure", nil)

	if len(err.Stack) == 0 {
		t.Error("Expected stack trace to be captured")
	}

	hasValidFrame := false
	for _, frame := range err.Stack {
		if frame.Function != "" && frame.File != "" && frame.Line > 0 {
			hasValidFrame = true
			break
		}
	}

	if !hasValidFrame {
		t.Error("Expected valid stack frame information")
	}
}

func TestMethodChaining(t *testing.T) {
	err := New(lookupCode, "row missing", nil).
		AddContext("row", "42").
		WithCause(errors.New("cause"))

	if err.Code.String() != "test.row_missing" {
		t.Errorf("Expected code 'test.row_missing', got '%s'", err.Code.String())
	}

	if err.Context["row"] != "42" {
		t.Errorf("Expected context row='42', got '%s'", err.Context["row"])
	}

	if err.Cause == nil {
		t.Error("Expected cause to be set")
	}
}
