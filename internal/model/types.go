package model

import "time"

const EnvelopeVersion = "v1"

type Envelope struct {
	Version  string       `json:"version"`
	Success  bool         `json:"success"`
	Data     any          `json:"data,omitempty"`
	Error    *ErrorBody   `json:"error"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     EnvelopeMeta `json:"meta"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type EnvelopeMeta struct {
	RequestID string           `json:"request_id"`
	Timestamp time.Time        `json:"timestamp"`
	Command   string           `json:"command"`
	Providers []ProviderStatus `json:"providers,omitempty"`
	Cache     CacheStatus      `json:"cache"`
}

type ProviderStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

type CacheStatus struct {
	Status string `json:"status"`
	AgeMS  int64  `json:"age_ms"`
	Stale  bool   `json:"stale"`
}

type ProviderInfo struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities"`
}

// CommandInfo describes one instruction-set entry for `commands list`.
type CommandInfo struct {
	Opcode string `json:"opcode"`
	Name   string `json:"name"`
	Family string `json:"family"`
}

// StepResult is the per-step slice of a chained quote. Output preserves the
// provider's full result tuple (ABI-encoded, 0x-prefixed) so callers can
// inspect auxiliary fields like per-hop price metrics.
type StepResult struct {
	Index   int    `json:"index"`
	Opcode  string `json:"opcode"`
	Command string `json:"command"`
	Amount  string `json:"amount"`
	Output  string `json:"output"`
}

// QuoteResult is the rendered outcome of one execution request.
type QuoteResult struct {
	ChainID     string       `json:"chain_id"`
	Steps       []StepResult `json:"steps"`
	FinalAmount string       `json:"final_amount"`
	FetchedAt   string       `json:"fetched_at"`
}
