package log

import "testing"

func TestFileSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "main"},
		{"tracker", "tracker"},
		{"3f2c6a1e-9b7d-4f00-8c1a-2b3c4d5e6f70", "3f2c6a1e-9b7d-4f00-8c1a-2b3c4d5e6f70"},
		{"../../etc/passwd", "______etc_passwd"},
		{"///", "main"},
	}
	for _, tt := range tests {
		if got := fileSafeName(tt.in); got != tt.want {
			t.Errorf("fileSafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
