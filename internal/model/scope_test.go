package model

import "testing"

func TestMonthRange(t *testing.T) {
	scopes, err := MonthRange(2023, 11, 2024, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Scope{
		MonthScope(2023, 11),
		MonthScope(2023, 12),
		MonthScope(2024, 1),
		MonthScope(2024, 2),
	}

	if len(scopes) != len(want) {
		t.Fatalf("got %d scopes, want %d: %v", len(scopes), len(want), scopes)
	}
	for i := range want {
		if scopes[i] != want[i] {
			t.Errorf("scopes[%d] = %v, want %v", i, scopes[i], want[i])
		}
	}
}

func TestMonthRange_SingleMonth(t *testing.T) {
	scopes, err := MonthRange(2022, 7, 2022, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scopes) != 1 || scopes[0] != MonthScope(2022, 7) {
		t.Errorf("got %v, want single 2022-07 scope", scopes)
	}
}

func TestMonthRange_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		sy, sm, ey, em int
	}{
		{"end before start same year", 2024, 3, 2024, 1},
		{"end year before start year", 2024, 1, 2023, 12},
		{"start month too large", 2024, 13, 2024, 12},
		{"start month zero", 2024, 0, 2024, 3},
		{"end month too large", 2024, 1, 2024, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MonthRange(tt.sy, tt.sm, tt.ey, tt.em); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestScope_CacheKey(t *testing.T) {
	month := MonthScope(2023, 11)
	if got := month.CacheKey(); got != "photo_2023_11" {
		t.Errorf("month CacheKey() = %q, want %q", got, "photo_2023_11")
	}

	album := AlbumScope("ABC123", "Holiday")
	if got := album.CacheKey(); got != "album_ABC123" {
		t.Errorf("album CacheKey() = %q, want %q", got, "album_ABC123")
	}

	// Distinct scopes must never share a key.
	keys := map[string]bool{}
	for _, s := range []Scope{
		MonthScope(2023, 1), MonthScope(2023, 11), MonthScope(2024, 1),
		AlbumScope("a1", ""), AlbumScope("a2", ""),
	} {
		if keys[s.CacheKey()] {
			t.Errorf("duplicate cache key %q for scope %v", s.CacheKey(), s)
		}
		keys[s.CacheKey()] = true
	}
}

func TestScope_String(t *testing.T) {
	if got := MonthScope(2023, 4).String(); got != "2023-04" {
		t.Errorf("month String() = %q, want %q", got, "2023-04")
	}
	if got := AlbumScope("id1", "Trips").String(); got != "Trips" {
		t.Errorf("album String() = %q, want %q", got, "Trips")
	}
	if got := AlbumScope("id1", "").String(); got != "id1" {
		t.Errorf("untitled album String() = %q, want %q", got, "id1")
	}
}
