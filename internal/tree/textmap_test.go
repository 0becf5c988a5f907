package tree

import "testing"

func TestLocate(t *testing.T) {
	// Source: `a&amp;bc` producing output "a&bc" —
	// 'a' literal [0,1)->[0,1), '&' char-ref [1,2)->[1,6), "bc" literal [2,4)->[6,8).
	entries := []TextMap{
		{TextOffset: 0, TextLen: 1, SrcStart: 0, SrcEnd: 1, Kind: TextMapLiteral},
		{TextOffset: 1, TextLen: 1, SrcStart: 1, SrcEnd: 6, Kind: TextMapCharRef},
		{TextOffset: 2, TextLen: 2, SrcStart: 6, SrcEnd: 8, Kind: TextMapLiteral},
	}

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start of first literal", 0, 0},
		{"inside char ref maps to its start", 1, 1},
		{"start of trailing literal", 2, 6},
		{"second char of trailing literal", 3, 7},
		{"past every entry falls back past last span end", 4, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Locate(entries, tc.offset); got != tc.want {
				t.Fatalf("Locate(%d) = %d, want %d", tc.offset, got, tc.want)
			}
		})
	}
}

func TestLocateWithNoEntriesIsIdentity(t *testing.T) {
	if got := Locate(nil, 5); got != 5 {
		t.Fatalf("Locate(nil, 5) = %d, want 5", got)
	}
}
