package utils

import "testing"

func TestFormatTokenBalance(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int32
		want     string
	}{
		{name: "one ether", raw: "1000000000000000000", decimals: 18, want: "1"},
		{name: "truncates to four digits", raw: "1234567890000000000", decimals: 18, want: "1.2345"},
		{name: "usdc six decimals", raw: "2500000", decimals: 6, want: "2.5"},
		{name: "below display precision", raw: "1", decimals: 18, want: "0"},
		{name: "zero", raw: "0", decimals: 18, want: "0"},
		{name: "empty", raw: "", decimals: 18, want: "0"},
		{name: "garbage", raw: "abc", decimals: 18, want: "0"},
		{name: "no decimals", raw: "42", decimals: 0, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTokenBalance(tt.raw, tt.decimals, DefaultDisplayDecimals); got != tt.want {
				t.Fatalf("FormatTokenBalance(%q, %d): want %q, got %q", tt.raw, tt.decimals, tt.want, got)
			}
		})
	}
}

func TestSumProducts(t *testing.T) {
	got, err := SumProducts([][2]string{{"21000", "1000000000"}, {"50000", "2000000000"}})
	if err != nil {
		t.Fatalf("SumProducts: %v", err)
	}
	if got.String() != "121000000000000" {
		t.Fatalf("SumProducts: want 121000000000000, got %s", got)
	}

	if _, err := SumProducts([][2]string{{"1.5", "2"}}); err == nil {
		t.Fatalf("SumProducts: want error for non-integer input")
	}
}

func TestTruncate(t *testing.T) {
	items := []int{1, 2, 3}
	if got := Truncate(items, 2); len(got) != 2 {
		t.Fatalf("Truncate(2): got %v", got)
	}
	if got := Truncate(items, 10); len(got) != 3 {
		t.Fatalf("Truncate(10): got %v", got)
	}
}
