package errors

import "testing"

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative path", "problems/garden.txt", false},
		{"valid nested path", "out/runs/latest.json", false},
		{"empty path", "", true},
		{"path traversal", "../etc/passwd", true},
		{"embedded traversal", "problems/../../secrets", true},
		{"backslash", `problems\garden.txt`, true},
		{"null byte", "problems/\x00garden", true},
		{"control character", "problems/\x01garden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}

	// Too-long paths are rejected.
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidatePath(string(long)); err == nil {
		t.Error("ValidatePath should reject paths over 500 characters")
	}
}

func TestValidateRunID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"empty", "", true},
		{"uppercase", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", true},
		{"missing segment", "6ba7b810-9dad-11d1-80b4", true},
		{"not a uuid", "latest", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRunID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRunID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"text", "text", false},
		{"grid", "grid", false},
		{"json", "json", false},
		{"pretty", "pretty", false},
		{"mixed case", "JSON", false},
		{"empty", "", true},
		{"unsupported", "yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
