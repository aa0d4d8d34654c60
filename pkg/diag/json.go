package diag

import (
	"github.com/segmentio/encoding/json"
)

// jsonRecord is the wire shape used by cmd/safec's structured diagnostic
// dump, written whenever -o names a path ending in ".json". segmentio/encoding/json is a
// drop-in, allocation-lighter replacement for encoding/json on the same
// Marshal contract, which is all this needs.
type jsonRecord struct {
	File    string `json:"file"`
	Line    uint   `json:"line"`
	Column  uint   `json:"column"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// MarshalJSON renders every accumulated record as a JSON array, in emission
// order.
func (e *Engine) MarshalJSON() ([]byte, error) {
	out := make([]jsonRecord, len(e.records))
	for i, r := range e.records {
		out[i] = jsonRecord{
			File:    r.Loc.File,
			Line:    r.Loc.Line,
			Column:  r.Loc.Column,
			Level:   r.Level.String(),
			Message: r.Message,
		}
	}
	return json.Marshal(out)
}
