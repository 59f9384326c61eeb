package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input     string
		wantCents int64
		wantErr   bool
	}{
		{"12.50", 1250, false},
		{"0.01", 1, false},
		{"30", 3000, false},
		{"-10.00", -1000, false},
		{"49.99", 4999, false},
		{"1.999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Cents() != tt.wantCents {
				t.Errorf("Parse(%q).Cents() = %d, want %d", tt.input, got.Cents(), tt.wantCents)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1250, "12.50"},
		{1, "0.01"},
		{3000, "30.00"},
		{-1000, "-10.00"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := FromCents(tt.cents).String(); got != tt.want {
			t.Errorf("FromCents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10.10")
	b := MustParse("0.20")

	if got := a.Add(b).String(); got != "10.30" {
		t.Errorf("Add = %s, want 10.30", got)
	}
	if got := a.Sub(b).String(); got != "9.90" {
		t.Errorf("Sub = %s, want 9.90", got)
	}
	if got := b.Neg().String(); got != "-0.20" {
		t.Errorf("Neg = %s, want -0.20", got)
	}
	if got := a.Min(b); !got.Equal(b) {
		t.Errorf("Min = %s, want %s", got, b)
	}

	// The classic float failure: 0.1 + 0.2 must be exactly 0.3.
	sum := MustParse("0.10").Add(MustParse("0.20"))
	if !sum.Equal(MustParse("0.30")) {
		t.Errorf("0.10 + 0.20 = %s, want 0.30", sum)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(MustParse("12.5"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `"12.50"` {
		t.Errorf("Marshal = %s, want \"12.50\"", out)
	}

	var a Amount
	if err := json.Unmarshal([]byte(`"30.00"`), &a); err != nil {
		t.Fatalf("Unmarshal string failed: %v", err)
	}
	if a.Cents() != 3000 {
		t.Errorf("Unmarshal string = %d cents, want 3000", a.Cents())
	}

	// Bare JSON numbers from older clients are accepted when exact.
	if err := json.Unmarshal([]byte(`25.75`), &a); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if a.Cents() != 2575 {
		t.Errorf("Unmarshal number = %d cents, want 2575", a.Cents())
	}

	if err := json.Unmarshal([]byte(`"1.234"`), &a); err == nil {
		t.Error("expected error for three fractional digits")
	}
}
