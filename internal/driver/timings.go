package driver

import (
	"encoding/json"
	"fmt"

	"inlinable/internal/diag"
	"inlinable/internal/observ"
	"inlinable/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimings adds an ObsTimings diagnostic whose note carries the report
// as JSON. When bag is full the result is a larger copy holding the entry.
func AppendTimings(bag *diag.Bag, kind, path string, report observ.Report) *diag.Bag {
	if bag == nil {
		return nil
	}
	payload := timingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return bag
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return bag
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Merge(bag)
	overflow.Add(entry)
	return overflow
}
