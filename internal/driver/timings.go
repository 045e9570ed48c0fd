package driver

import (
	"encoding/json"
	"fmt"

	"canon/internal/diag"
	"canon/internal/observ"
	"canon/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic attaches the report as an info diagnostic whose
// note carries the JSON payload. It ignores the list's cap.
func appendTimingDiagnostic(list *diag.Diagnostics, file source.FileID, payload timingPayload) {
	if list == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s for %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		File:     file,
		Notes:    []diag.Note{{Msg: string(data)}},
	}

	if list.Add(entry) {
		return
	}
	overflow := diag.NewDiagnostics(1)
	overflow.Add(entry)
	list.Merge(overflow)
}
