package cli

import "testing"

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		input     string
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{"2023-11", 2023, 11, false},
		{"2024-02", 2024, 2, false},
		{"1999-1", 1999, 1, false},
		{"2023", 0, 0, true},
		{"2023-xx", 0, 0, true},
		{"abcd-11", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			year, month, err := parseYearMonth(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseYearMonth(%q) expected error, got %d-%d", tt.input, year, month)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseYearMonth(%q) failed: %v", tt.input, err)
			}
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("parseYearMonth(%q) = (%d, %d), want (%d, %d)",
					tt.input, year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}
