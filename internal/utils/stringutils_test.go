package utils

import "testing"

func TestGetShortMethodName(t *testing.T) {
	tests := []struct {
		fullName string
		want     string
	}{
		{"MyMethod(System.String, System.Int32)", "MyMethod(...)"},
		{"MyMethod()", "MyMethod()"},
		{"MyMethod", "MyMethod"},
		{"MyMethod(", "MyMethod("},
		{"(weird", "(weird"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := GetShortMethodName(tt.fullName); got != tt.want {
			t.Errorf("GetShortMethodName(%q) = %q, want %q", tt.fullName, got, tt.want)
		}
	}
}

func TestReplaceInvalidPathChars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My.Assembly-Name_1", "My.Assembly-Name_1"},
		{"My<Class>+Nested", "My_Class_Nested"},
		{"a b\tc", "a_b_c"},
	}
	for _, tt := range tests {
		if got := ReplaceInvalidPathChars(tt.input); got != tt.want {
			t.Errorf("ReplaceInvalidPathChars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReplaceNonLetterChars(t *testing.T) {
	if got := ReplaceNonLetterChars("get_Count()"); got != "get_Count" {
		t.Errorf("ReplaceNonLetterChars = %q, want %q", got, "get_Count")
	}
}
