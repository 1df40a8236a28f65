// ABOUTME: Chunk represents a token-bounded slice of input text
// ABOUTME: Produced by the chunker and summarized independently
package models

// Chunk is one contiguous window of tokens from the source text.
// Concatenating Tokens across chunks in Index order yields the original
// token sequence.
type Chunk struct {
	Index  int    `json:"index"`
	Tokens []uint `json:"tokens"`
	Text   string `json:"text"`
}

// TokenCount returns the number of tokens in the chunk
func (c Chunk) TokenCount() int {
	return len(c.Tokens)
}
