package extract

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{name: "dot thousands", input: "1.800.000", want: 1800000, ok: true},
		{name: "comma thousands", input: "79,600", want: 79600, ok: true},
		{name: "decimal comma rounds up", input: "17.592,59", want: 17593, ok: true},
		{name: "decimal comma rounds down", input: "17.592,49", want: 17592, ok: true},
		{name: "plain digits", input: "405000", want: 405000, ok: true},
		{name: "mixed separators", input: "3.072.258", want: 3072258, ok: true},
		{name: "surrounding whitespace", input: " 50.000 ", want: 50000, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "not a number", input: "N/A", ok: false},
		{name: "letters mixed in", input: "12a34", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMoney(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseMoney(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMoney(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{79600, "79,600"},
		{1800000, "1,800,000"},
		{3072258, "3,072,258"},
		{-52400, "-52,400"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.input); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Every parseable money string survives a parse/format/parse round trip.
func TestParseMoneyRoundTrip(t *testing.T) {
	inputs := []string{"1.800.000", "79,600", "405000", "50.000", "2.816.100"}
	for _, in := range inputs {
		n, ok := ParseMoney(in)
		if !ok {
			t.Fatalf("ParseMoney(%q) failed", in)
		}
		n2, ok := ParseMoney(FormatMoney(n))
		if !ok || n2 != n {
			t.Errorf("round trip of %q: got %d, want %d", in, n2, n)
		}
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.000", "10,000"},
		{"2", "2"},
		{"", ""},
		{"abc", "abc"}, // unparseable stays raw
	}
	for _, tt := range tests {
		if got := normalizeNumber(tt.input); got != tt.want {
			t.Errorf("normalizeNumber(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
