package validator

import (
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "error with field and value",
			i: Issue{
				Severity: SeverityError,
				Field:    "name",
				Message:  "is required",
				Value:    "",
			},
			want: "error: field \"name\": is required (got )",
		},
		{
			name: "warning without field",
			i: Issue{
				Severity: SeverityWarning,
				Message:  "recommended description",
			},
			want: "warning: recommended description",
		},
		{
			name: "info with field",
			i: Issue{
				Severity: SeverityInfo,
				Field:    "Control+A",
				Message:  "default binding disabled",
			},
			want: "info: field \"Control+A\": default binding disabled",
		},
		{
			name: "skipped line",
			i: Issue{
				Severity: SeverityWarning,
				Line:     14,
				Kind:     "invalid_number",
				Message:  "KEY entry: modifiers: invalid number",
			},
			want: "warning: line 14: KEY entry: modifiers: invalid number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.i.Error(); got != tt.want {
				t.Errorf("Issue.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_Helpers(t *testing.T) {
	r := &Result{}

	if r.HasErrors() {
		t.Error("expected no errors")
	}

	r.AddError("f1", "m1", "v1")
	if !r.HasErrors() {
		t.Error("expected errors")
	}
	if len(r.Errors()) != 1 {
		t.Errorf("expected 1 error, got %d", len(r.Errors()))
	}

	if r.HasWarnings() {
		t.Error("expected no warnings")
	}
	r.AddWarning("f2", "m2", "v2")
	if !r.HasWarnings() {
		t.Error("expected warnings")
	}
	if len(r.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %d", len(r.Warnings()))
	}

	r.AddInfo("f3", "m3", "v3")
	if len(r.Issues) != 3 {
		t.Errorf("expected 3 issues, got %d", len(r.Issues))
	}
}

func TestResult_NilSafety(t *testing.T) {
	var r *Result
	if r.HasErrors() {
		t.Error("expected no errors for nil result")
	}
	if r.HasWarnings() {
		t.Error("expected no warnings for nil result")
	}
	if r.Errors() != nil {
		t.Error("expected nil Errors() for nil result")
	}
	if r.Warnings() != nil {
		t.Error("expected nil Warnings() for nil result")
	}
}

func TestSeverity_JSON(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v) error: %v", s, err)
		}
		if string(data) != `"`+s.String()+`"` {
			t.Errorf("Marshal(%v) = %s", s, data)
		}
		var back Severity
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", data, err)
		}
		if back != s {
			t.Errorf("round trip = %v, want %v", back, s)
		}
	}

	var s Severity
	if err := json.Unmarshal([]byte(`"fatal"`), &s); err == nil {
		t.Error("expected error for unknown severity")
	}
}
