package main

import "testing"

func TestVerboseRequested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", nil, false},
		{"short flag", []string{"-v", "a.html"}, true},
		{"long flag", []string{"a.html", "--verbose"}, true},
		{"after terminator", []string{"--", "-v"}, false},
		{"other flags", []string{"-q", "--version"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := verboseRequested(tt.args); got != tt.want {
				t.Errorf("verboseRequested(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
