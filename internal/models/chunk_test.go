// ABOUTME: Tests for Chunk and Brief helpers
// ABOUTME: Verifies token counts and action item rendering
package models

import "testing"

func TestChunk_TokenCount(t *testing.T) {
	c := Chunk{Index: 0, Tokens: []uint{1, 2, 3}, Text: "abc"}
	if c.TokenCount() != 3 {
		t.Errorf("TokenCount() = %d, want 3", c.TokenCount())
	}
	if (Chunk{}).TokenCount() != 0 {
		t.Error("empty chunk should have zero tokens")
	}
}

func TestBrief_Rendered(t *testing.T) {
	tests := []struct {
		name  string
		brief Brief
		want  string
	}{
		{
			name:  "no action items",
			brief: Brief{Summary: "Short summary."},
			want:  "Short summary.",
		},
		{
			name: "one action item",
			brief: Brief{
				Summary:     "Short summary.",
				ActionItems: []string{"Meet me on December 5 at noon."},
			},
			want: "Short summary.\n\n**Action Items:**\n- Meet me on December 5 at noon.",
		},
		{
			name: "two action items",
			brief: Brief{
				Summary:     "S.",
				ActionItems: []string{"A on Monday.", "B on Friday."},
			},
			want: "S.\n\n**Action Items:**\n- A on Monday.\n- B on Friday.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.brief.Rendered(); got != tt.want {
				t.Errorf("Rendered() = %q, want %q", got, tt.want)
			}
		})
	}
}
