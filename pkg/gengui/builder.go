package gengui

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/observability"
	"github.com/odvcencio/gengui/pkg/tk"
)

// Builder materializes widget documents through a Toolkit. It keeps no
// references to the widgets it creates.
type Builder struct {
	toolkit Toolkit
	logger  *observability.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the builder's logger.
func WithLogger(l *observability.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a builder over toolkit.
func NewBuilder(toolkit Toolkit, opts ...BuilderOption) *Builder {
	b := &Builder{
		toolkit: toolkit,
		logger:  observability.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates the widgets described by tree under parent. The first
// failure aborts the build; widgets created before it are left in place.
func (b *Builder) Build(ctx context.Context, parent tk.Widget, tree *Mapping) error {
	ctx, span := observability.StartSpan(ctx, "gengui.build")
	defer span.End()

	start := time.Now()
	run := &buildRun{Builder: b, ctx: ctx, logger: b.logger.WithContext(ctx)}
	err := run.build(parent, tree)
	elapsed := time.Since(start)

	observability.RecordBuild(elapsed.Seconds(), err)
	span.SetAttributes(observability.AttrWidgetCount.Int(run.created))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		run.logger.BuildFailed(run.created, err)
		return err
	}
	run.logger.BuildCompleted(run.created, float64(elapsed.Microseconds())/1000)
	return nil
}

type buildRun struct {
	*Builder
	ctx     context.Context
	logger  *observability.Logger
	created int
}

func (r *buildRun) build(parent tk.Widget, tree *Mapping) error {
	for _, name := range tree.Keys() {
		v, _ := tree.Get(name)
		switch entry := v.(type) {
		case *Mapping:
			if err := r.buildEntry(parent, name, entry); err != nil {
				return err
			}
		case List:
			// Each item is built as if it stood alone under name, so nested
			// lists flatten and scalar items describe nothing.
			for _, item := range entry {
				single := NewMapping()
				single.Set(name, item)
				if err := r.build(parent, single); err != nil {
					return err
				}
			}
		}
		// Scalars at this level describe no widget.
	}
	return nil
}

// buildEntry creates one widget and, when its description nests further
// widgets, recurses into them with the new widget as parent.
func (r *buildRun) buildEntry(parent tk.Widget, name string, desc *Mapping) error {
	ex, err := Extract(desc)
	if err != nil {
		return errors.Wrap(err, errors.GetCode(err), "invalid widget description").WithContext("name", name)
	}
	w, err := r.toolkit.Construct(name, parent, name, ex.Options)
	if err != nil {
		return err
	}
	if err := r.toolkit.Place(w, ex.Placement); err != nil {
		return err
	}
	r.created++
	observability.WidgetsCreated.WithLabelValues(name).Inc()
	r.logger.WidgetCreated(name, w.Name(), parent.Name(), ex.Placement.Row, ex.Placement.Column)
	observability.AddEvent(r.ctx, "widget.created",
		observability.AttrWidgetKind.String(name),
		observability.AttrWidgetName.String(w.Name()),
	)

	if ex.Remainder.Len() == 0 {
		return nil
	}
	return r.build(w, ex.Remainder)
}
