package warehouse

import "testing"

func TestAsString(t *testing.T) {
	if got := asString("D01"); got != "D01" {
		t.Errorf("asString(string) = %q", got)
	}
	if got := asString(int64(42)); got != "42" {
		t.Errorf("asString(int64) = %q", got)
	}
	if got := asString(nil); got != "" {
		t.Errorf("asString(nil) = %q", got)
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int64", int64(2), 2},
		{"float64", 1.0, 1},
		{"numeric string", "2", 2},
		{"garbage string", "abc", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		if got := asInt(tt.in); got != tt.want {
			t.Errorf("asInt(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 150.5, 150.5},
		{"int64", int64(100), 100},
		{"numeric string", "10.5", 10.5},
		{"garbage string", "n/a", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		if got := asFloat(tt.in); got != tt.want {
			t.Errorf("asFloat(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
