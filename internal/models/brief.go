// ABOUTME: Brief is the result of summarizing one submission
// ABOUTME: Carried from the summarize step to the automate step
package models

import "strings"

// Brief holds a summary, the action items found and the source text
type Brief struct {
	Summary      string   `json:"summary"`
	ActionItems  []string `json:"action_items"`
	OriginalText string   `json:"original_text"`
	ChunkCount   int      `json:"chunk_count"`
}

// Rendered returns the summary with the action item list appended
func (b *Brief) Rendered() string {
	if len(b.ActionItems) == 0 {
		return b.Summary
	}
	return b.Summary + "\n\n**Action Items:**\n- " + strings.Join(b.ActionItems, "\n- ")
}
