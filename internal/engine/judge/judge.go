// Package judge delegates a natural-language verdict on source code to a
// hosted model. It is an external collaborator to the structural analyzer:
// its failures are categorically distinct from parse failures and the two
// result records are never merged.
package judge

// Verdict is the structured judgment returned by the remote model. The
// fields are carried through unvalidated; the probability is only
// "integer-like" by contract.
type Verdict struct {
	Probability     int    `json:"overall_ai_probability"`
	SuspectedSource string `json:"suspected_source_site"`
	Reasoning       string `json:"reasoning"`
	Summary         string `json:"text_summary"`
}
