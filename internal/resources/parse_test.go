package resources

import "testing"

func TestParseCPU(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"1", 1, false},
		{"0.5", 0.5, false},
		{"500m", 0.5, false},
		{"1500m", 1.5, false},
		{" 2 ", 2, false},
		{"m", 0, true},
		{"-1", 0, true},
		{"0", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCPU(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseCPU(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCPU(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCPU(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMemory(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"", 0, false},
		{"1024", 1024, false},
		{"1Ki", 1024, false},
		{"1KiB", 1024, false},
		{"512Mi", 512 << 20, false},
		{"2Gi", 2 << 30, false},
		{"-1Mi", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMemory(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseMemory(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMemory(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMemory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
