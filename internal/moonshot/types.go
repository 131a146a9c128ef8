package moonshot

// sessionList is the JSON document printed by the session CLI.
type sessionList struct {
	Sessions []Session `json:"sessions"`
}

// Session is one session record. UpdatedAt may be in seconds or milliseconds.
type Session struct {
	Model       string  `json:"model"`
	UpdatedAt   float64 `json:"updatedAt"`
	TotalTokens int64   `json:"totalTokens"`
}

// TokenSplit apportions a session's total tokens between input and output,
// since session records carry only a combined count.
type TokenSplit struct {
	Input  float64
	Output float64
}

// DefaultSplit is the usual query-heavy ratio.
var DefaultSplit = TokenSplit{Input: 0.9, Output: 0.1}

// Apply splits total, truncating each share independently.
func (s TokenSplit) Apply(total int64) (input, output int64) {
	return int64(float64(total) * s.Input), int64(float64(total) * s.Output)
}
