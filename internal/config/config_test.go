package config

import "testing"

func TestDefaults(t *testing.T) {
	c := Default()
	if c.ByteSize != 1 {
		t.Errorf("ByteSize = %d, want 1", c.ByteSize)
	}
	if c.TapeSize != 30000 {
		t.Errorf("TapeSize = %d, want 30000", c.TapeSize)
	}
	if c.OutputPath != "bfcbin" {
		t.Errorf("OutputPath = %q, want %q", c.OutputPath, "bfcbin")
	}
	if c.OverflowBehavior != OverflowUndefined {
		t.Errorf("OverflowBehavior = %v, want OverflowUndefined", c.OverflowBehavior)
	}
}

func TestMaxCellValue(t *testing.T) {
	c := Default()
	if got := c.MaxCellValue(); got != 255 {
		t.Errorf("MaxCellValue() = %d, want 255", got)
	}
}

func TestParseOverflowBehavior(t *testing.T) {
	tests := []struct {
		in      string
		want    OverflowBehavior
		wantErr bool
	}{
		{"undefined", OverflowUndefined, false},
		{"", OverflowUndefined, false},
		{"cap", OverflowCap, false},
		{"abort", OverflowAbort, false},
		{"bogus", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOverflowBehavior(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOverflowBehavior(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseOverflowBehavior(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
