package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigValidator_OneOf(t *testing.T) {
	cv := NewConfigValidator("Config")
	cv.OneOf("LogLevel", "info", "debug", "info")
	if err := cv.Validate(); err != nil {
		t.Errorf("Expected allowed value to pass, got %v", err)
	}

	cv = NewConfigValidator("Config")
	cv.OneOf("LogLevel", "verbose", "debug", "info")
	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), "Config.LogLevel") {
		t.Errorf("Expected error naming Config.LogLevel, got %v", err)
	}
}

func TestConfigValidator_MinDuration(t *testing.T) {
	tests := []struct {
		value   time.Duration
		wantErr bool
	}{
		{0, true},
		{999 * time.Millisecond, true},
		{time.Second, false},
		{time.Minute, false},
	}

	for _, tt := range tests {
		cv := NewConfigValidator("Server")
		cv.MinDuration("ReadTimeout", tt.value, time.Second)
		if got := cv.Validate() != nil; got != tt.wantErr {
			t.Errorf("MinDuration(%v): error = %v, want %v", tt.value, got, tt.wantErr)
		}
	}
}

func TestConfigValidator_AtMost(t *testing.T) {
	cv := NewConfigValidator("Input")
	cv.AtMost("MaxLineBytes", 1024, 1024)
	if len(cv.Errors()) != 0 {
		t.Errorf("Expected limit itself to pass, got %v", cv.Errors())
	}

	cv.AtMost("MaxLineBytes", 1025, 1024)
	if len(cv.Errors()) != 1 {
		t.Errorf("Expected 1 error above the limit, got %d", len(cv.Errors()))
	}
}

func TestConfigValidator_Distinct(t *testing.T) {
	cv := NewConfigValidator("Input")
	cv.Distinct("CommentMarkers", []string{"#", "%"})
	if err := cv.Validate(); err != nil {
		t.Errorf("Expected distinct markers to pass, got %v", err)
	}

	cv.Distinct("CommentMarkers", []string{"#", "%", "#"})
	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), `"#"`) {
		t.Errorf("Expected error naming the repeated marker, got %v", err)
	}
}

func TestConfigValidator_CustomAndWhen(t *testing.T) {
	sentinel := errors.New("marker contains whitespace")

	cv := NewConfigValidator("Input")
	cv.When(false, func(v *ConfigValidator) {
		v.Custom("CommentMarkers", func() error { return sentinel })
	})
	if len(cv.Errors()) != 0 {
		t.Error("When(false) should skip its checks")
	}

	cv.When(true, func(v *ConfigValidator) {
		v.Custom("CommentMarkers", func() error { return sentinel })
		v.Custom("MaxLineBytes", func() error { return nil })
	})
	if len(cv.Errors()) != 1 {
		t.Fatalf("Expected 1 error, got %v", cv.Errors())
	}
	if !strings.Contains(cv.Errors()[0].Error(), "whitespace") {
		t.Errorf("Custom error should carry the reason, got %v", cv.Errors()[0])
	}
}

func TestConfigValidator_Validate(t *testing.T) {
	if err := NewConfigValidator("Config").Validate(); err != nil {
		t.Errorf("Expected nil from empty validator, got %v", err)
	}

	cv := NewConfigValidator("Config")
	cv.OneOf("LogLevel", "loud", "info").
		MinDuration("Server.ReadTimeout", 0, time.Second).
		AtMost("Input.MaxLineBytes", 10, 5)

	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), "3 invalid fields") {
		t.Fatalf("Expected joined error, got %v", err)
	}
	for _, e := range cv.Errors() {
		if !errors.Is(err, e) {
			t.Errorf("Joined error should wrap %v", e)
		}
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "Config.LogLevel" {
		t.Errorf("Expected first FieldError for Config.LogLevel, got %+v", fieldErr)
	}
}
