package utils

import (
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/trace"
)

type traceContextDTO struct {
	TraceID    string `json:"trace_id"`
	SpanID     string `json:"span_id"`
	TraceFlags byte   `json:"trace_flags"`
	TraceState string `json:"trace_state"`
	IsRemote   bool   `json:"is_remote"`
}

// SerializeTraceContext flattens a span context to JSON so events crossing
// the bus can carry their trace lineage.
func SerializeTraceContext(sc trace.SpanContext) ([]byte, error) {
	dto := traceContextDTO{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		TraceFlags: byte(sc.TraceFlags()),
		TraceState: sc.TraceState().String(),
		IsRemote:   sc.IsRemote(),
	}

	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("SerializeTraceContext: %w", err)
	}

	return data, nil
}

// DeserializeTraceContext rebuilds a span context from its JSON form.
func DeserializeTraceContext(data []byte) (trace.SpanContext, error) {
	var dto traceContextDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return trace.SpanContext{}, fmt.Errorf("DeserializeTraceContext: %w", err)
	}

	traceID, err := trace.TraceIDFromHex(dto.TraceID)
	if err != nil {
		return trace.SpanContext{}, fmt.Errorf("DeserializeTraceContext: trace id: %w", err)
	}

	spanID, err := trace.SpanIDFromHex(dto.SpanID)
	if err != nil {
		return trace.SpanContext{}, fmt.Errorf("DeserializeTraceContext: span id: %w", err)
	}

	traceState, err := trace.ParseTraceState(dto.TraceState)
	if err != nil {
		return trace.SpanContext{}, fmt.Errorf("DeserializeTraceContext: trace state: %w", err)
	}

	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.TraceFlags(dto.TraceFlags),
		TraceState: traceState,
		Remote:     dto.IsRemote,
	}), nil
}
