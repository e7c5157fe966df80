package gengui

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/odvcencio/gengui/pkg/observability"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func spanNamed(t *testing.T, rec *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range rec.Ended() {
		if s.Name() == name {
			return s
		}
	}
	require.Failf(t, "span not recorded", "%q", name)
	return nil
}

func TestSession_TracesLoadAndBuild(t *testing.T) {
	rec := recordSpans(t)
	s := NewSession(nil)
	_, err := s.Initialize(context.Background(), writeDoc(t, "ui.json", `{"Frame": {"Label": {}}}`), "traced")
	require.NoError(t, err)

	load := spanNamed(t, rec, "gengui.load")
	var doc string
	for _, kv := range load.Attributes() {
		if kv.Key == observability.AttrDocument {
			doc = kv.Value.AsString()
		}
	}
	assert.True(t, strings.HasSuffix(doc, "ui.json"), doc)

	build := spanNamed(t, rec, "gengui.build")
	assert.Contains(t, build.Attributes(), observability.AttrWidgetCount.Int(2))
	events := build.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "widget.created", events[0].Name)
	assert.Contains(t, events[1].Attributes, observability.AttrWidgetKind.String("Label"))

	initSpan := spanNamed(t, rec, "gengui.initialize")
	assert.Contains(t, initSpan.Attributes(), observability.AttrSessionID.String(s.ID()))
	assert.Equal(t, initSpan.SpanContext().SpanID(), build.Parent().SpanID())
}

func TestBuild_TracesFailure(t *testing.T) {
	rec := recordSpans(t)
	_, err := buildDoc(t, `{"Label": {}, "Gizmo": {}}`)
	require.Error(t, err)

	build := spanNamed(t, rec, "gengui.build")
	assert.Equal(t, codes.Error, build.Status().Code)
	assert.True(t, strings.Contains(build.Status().Description, "UNKNOWN_WIDGET"))
	assert.Contains(t, build.Attributes(), observability.AttrWidgetCount.Int(1))
}
