package models

// Stage tracks where a pipeline invocation currently is.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageSetup        Stage = "setup"
	StageFetching     Stage = "fetching"
	StageNormalizing  Stage = "normalizing"
	StageTranscribing Stage = "transcribing"
	StageSummarizing  Stage = "summarizing"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// Result is what one successful pipeline invocation returns.
type Result struct {
	Title      string     `json:"title,omitempty"`
	Transcript string     `json:"transcript"`
	Summary    string     `json:"summary"`
	Metadata   Metadata   `json:"metadata"`
	Fragments  []Fragment `json:"fragments,omitempty"`
	Advisories []string   `json:"advisories,omitempty"`
}
