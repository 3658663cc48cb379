package models

// Credentials identify one assistant on the Vapi platform. They are
// held in process memory for the session only: created at login,
// destroyed at logout, never written to disk.
type Credentials struct {
	AssistantID string
	APIToken    string
}

// Valid reports whether both fields are present.
func (c Credentials) Valid() bool {
	return c.AssistantID != "" && c.APIToken != ""
}

// AgentInfo is one assistant's configuration as shown and edited in
// the agent tab.
type AgentInfo struct {
	Name          string
	Instructions  string
	Roleplay      string
	VoiceID       string
	Model         string
	Temperature   float64 // in [0,1]
	FirstSentence string
}

// Clone returns a value copy for editing. The editable copy is never
// aliased to the fetched snapshot, so edits can be discarded without
// touching the source of truth.
func (a AgentInfo) Clone() AgentInfo {
	return a
}
