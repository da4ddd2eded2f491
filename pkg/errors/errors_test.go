package errors

import (
	"fmt"
	"testing"
)

func TestZenErrorBasics(t *testing.T) {
	err := New(CategoryValidation, CodeInvalidDate, "bad date")
	if err.Error() != "bad date" {
		t.Errorf("Expected message only, got %q", err.Error())
	}

	err.WithSuggestion("use YYYY-MM-DD")
	if err.Error() != "bad date (suggestion: use YYYY-MM-DD)" {
		t.Errorf("Expected suggestion appended, got %q", err.Error())
	}

	err.WithContext("field", "start-date")
	if err.Context["field"] != "start-date" {
		t.Errorf("Expected context value, got %v", err.Context["field"])
	}
}

func TestZenErrorExitCodes(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     int
	}{
		{category: CategoryFile, want: 2},
		{category: CategoryDecode, want: 3},
		{category: CategoryValidation, want: 3},
		{category: CategoryConfiguration, want: 4},
		{category: CategoryInternal, want: 5},
		{category: ErrorCategory("other"), want: 1},
	}

	for _, tt := range tests {
		err := New(tt.category, CodeUnexpectedError, "test")
		if got := err.GetExitCode(); got != tt.want {
			t.Errorf("Category %s: expected exit code %d, got %d", tt.category, tt.want, got)
		}
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(cause, CategoryFile, CodeFileUnreadable, "read failed")

	if err.Unwrap() != cause {
		t.Error("Expected Unwrap to return the cause")
	}
	if err.StackTrace == nil {
		t.Error("Expected a stack trace on wrapped error")
	}
	if Wrap(nil, CategoryFile, CodeFileUnreadable, "x") != nil {
		t.Error("Expected wrapping nil to return nil")
	}
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/tmp/settlement.csv", nil)
	if err.Category != CategoryFile || err.Code != CodeFileNotFound {
		t.Errorf("Unexpected category/code: %s/%s", err.Category, err.Code)
	}
	if err.Context["file_path"] != "/tmp/settlement.csv" {
		t.Errorf("Expected file_path context, got %v", err.Context["file_path"])
	}
	if err.Suggestion == "" {
		t.Error("Expected a suggestion")
	}
}

func TestAsZenError(t *testing.T) {
	zen := ValidationError(CodeInvalidTimezone, "timezone", "GMT+2", nil)
	wrapped := fmt.Errorf("flag parsing: %w", zen)

	got, ok := AsZenError(wrapped)
	if !ok {
		t.Fatal("Expected ZenError to be found through the chain")
	}
	if got.Code != CodeInvalidTimezone {
		t.Errorf("Expected invalid_timezone, got %s", got.Code)
	}

	if _, ok := AsZenError(fmt.Errorf("plain")); ok {
		t.Error("Expected plain error to not match")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	zen := New(CategoryDecode, CodeInvalidFormat, "bad input")
	if got := WrapIfNeeded(zen, CategoryInternal, CodeUnexpectedError, "x"); got != zen {
		t.Error("Expected existing ZenError to pass through unchanged")
	}

	plain := fmt.Errorf("oops")
	got := WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "operation failed")
	if got.Category != CategoryInternal || got.Unwrap() != plain {
		t.Error("Expected plain error to be wrapped as internal")
	}

	if WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "x") != nil {
		t.Error("Expected nil to stay nil")
	}
}
