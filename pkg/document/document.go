// Package document defines the persisted step-script form consumed by the
// chatbot runtime and the converter between that form and the graph model.
// It is the single place where the untagged wire shapes (message as string
// or object, responses as string or object) are translated into typed
// structs.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/zapflowhq/zapflow/pkg/flow"
)

// MetaStepID is the reserved step key that older documents used for
// metadata. It is never a real step and is skipped on load.
const MetaStepID = "_meta"

// Step is one entry of the step script.
//
// Message is either a plain string or an image object
// ({kind, imageUrl, message}); Responses values are either a plain string
// (key doubles as display value, no routing) or a routed object
// ({next, valor}). Both stay untyped here and are decoded by the converter.
type Step struct {
	Message        any                     `json:"message,omitempty"`
	Responses      map[string]any          `json:"responses,omitempty"`
	FreeInput      bool                    `json:"freeInput,omitempty"`
	Next           string                  `json:"next,omitempty"`
	DispatchMode   string                  `json:"dispatchMode,omitempty"`
	FinalVariants  map[string]FinalVariant `json:"finalVariants,omitempty"`
	NoMatchMessage string                  `json:"noMatchMessage,omitempty"`
	ResponseLabel  string                  `json:"responseLabel,omitempty"`
}

// FinalVariant is one fan-out variant of a terminal step.
type FinalVariant struct {
	Message  string `json:"message"`
	SectorID string `json:"sectorId"`
}

// Meta carries presentation metadata alongside the script: node positions
// for layout continuity and named groups with their member step IDs.
type Meta struct {
	NodePositions map[string]flow.Position `json:"nodePositions,omitempty"`
	Groups        map[string][]string      `json:"groups,omitempty"`
}

// Document is the canonical persisted form of a flow.
type Document struct {
	Steps           map[string]Step `json:"steps"`
	Meta            *Meta           `json:"meta,omitempty"`
	OffHoursMessage string          `json:"offHoursMessage,omitempty"`
}

// Parse decodes a step-script document, skipping malformed step entries
// rather than aborting: a step whose body is not an object is dropped, as
// is the reserved _meta key. Only a top-level decode failure is an error.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Steps           map[string]json.RawMessage `json:"steps"`
		Meta            *Meta                      `json:"meta,omitempty"`
		OffHoursMessage string                     `json:"offHoursMessage,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc := &Document{
		Steps:           make(map[string]Step, len(raw.Steps)),
		Meta:            raw.Meta,
		OffHoursMessage: raw.OffHoursMessage,
	}
	for id, body := range raw.Steps {
		if id == MetaStepID || id == "" {
			continue
		}
		var step Step
		if err := json.Unmarshal(body, &step); err != nil {
			continue
		}
		doc.Steps[id] = step
	}
	return doc, nil
}

// Encode renders the document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy of the document, going through JSON to keep the
// untyped message/response values isolated.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	return &out, nil
}
