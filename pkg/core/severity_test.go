package core_test

import (
	"encoding/json"
	"testing"

	"github.com/Jayk56/dslyrics/pkg/core"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  core.Severity
		want string
	}{
		{core.SeverityError, "error"},
		{core.SeverityWarning, "warning"},
		{core.SeverityInfo, "info"},
		{core.SeverityHint, "hint"},
		{core.Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input  string
		want   core.Severity
		wantOK bool
	}{
		{"error", core.SeverityError, true},
		{"WARNING", core.SeverityWarning, true},
		{"Info", core.SeverityInfo, true},
		{"hint", core.SeverityHint, true},
		{"fatal", core.SeverityWarning, false},
		{"", core.SeverityWarning, false},
	}

	for _, tt := range tests {
		got, ok := core.ParseSeverity(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSeverity(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(core.SeverityError)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(raw) != `"error"` {
		t.Errorf("Marshal = %s, want %q", raw, `"error"`)
	}

	var sev core.Severity
	if err := json.Unmarshal([]byte(`"hint"`), &sev); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if sev != core.SeverityHint {
		t.Errorf("Unmarshal = %v, want %v", sev, core.SeverityHint)
	}

	// Unknown names decode to the warning default rather than failing.
	if err := json.Unmarshal([]byte(`"catastrophic"`), &sev); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if sev != core.SeverityWarning {
		t.Errorf("Unmarshal unknown = %v, want %v", sev, core.SeverityWarning)
	}
}

func TestRuleInfoJSON(t *testing.T) {
	info := core.RuleInfo{
		ID:              "ST01",
		Name:            "metadata-required",
		Group:           "structure",
		Description:     "Songs must carry a metadata block",
		DefaultSeverity: core.SeverityError,
		Implemented:     true,
	}

	raw, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if decoded["id"] != "ST01" {
		t.Errorf("id = %v, want ST01", decoded["id"])
	}
	if decoded["default_severity"] != "error" {
		t.Errorf("default_severity = %v, want error", decoded["default_severity"])
	}
	if _, present := decoded["rationale"]; present {
		t.Error("empty rationale should be omitted from JSON")
	}
}
