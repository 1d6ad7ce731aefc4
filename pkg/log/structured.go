package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextFieldsKey struct{}

// ContextWithFields attaches fields that every StructuredLogger bound to ctx will emit.
func ContextWithFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing, _ := ctx.Value(contextFieldsKey{}).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, contextFieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextFieldsKey{}).([]zap.Field)
	return fields
}

// StructuredLogger logs operations as a start line, intermediate steps and one outcome.
type StructuredLogger struct {
	name   string
	base   *zap.Logger
	fields []zap.Field
}

// NewDebugLogger logs through the global zap logger, resolved at log time so
// zap.ReplaceGlobals after construction still takes effect.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name}
}

// NewStructuredLogger logs through l instead of the global logger.
func NewStructuredLogger(l *zap.Logger, name string) *StructuredLogger {
	return &StructuredLogger{name: name, base: l}
}

func (l *StructuredLogger) logger() *zap.Logger {
	base := l.base
	if base == nil {
		base = zap.L()
	}
	return base.Named(l.name).With(l.fields...)
}

// WithContext returns a copy carrying the fields attached to ctx.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	fields := fieldsFromContext(ctx)
	cp := *l
	cp.fields = append(append([]zap.Field{}, l.fields...), fields...)
	return &cp
}

func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{logger: l, operation: name}
}

// OperationBuilder collects the parameters of an operation before it starts.
type OperationBuilder struct {
	logger    *StructuredLogger
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.Stringer(key, value))
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

// Build logs the start of the operation and returns its tracer.
func (b *OperationBuilder) Build() *OperationTracer {
	l := b.logger.logger().With(zap.String("operation", b.operation)).With(b.fields...)
	l.Debug("operation started")
	return &OperationTracer{logger: l, started: time.Now()}
}

// OperationTracer emits the events of one running operation.
type OperationTracer struct {
	logger  *zap.Logger
	started time.Time
}

func (t *OperationTracer) Step(name string) *Event {
	return &Event{logger: t.logger, level: zap.DebugLevel, message: "operation step", fields: []zap.Field{zap.String("step", name)}}
}

func (t *OperationTracer) Success() *Event {
	return &Event{logger: t.logger, level: zap.DebugLevel, message: "operation succeeded", fields: []zap.Field{zap.Duration("duration", time.Since(t.started))}}
}

func (t *OperationTracer) Error(err error) *Event {
	return &Event{logger: t.logger, level: zap.ErrorLevel, message: "operation failed", fields: []zap.Field{zap.Error(err), zap.Duration("duration", time.Since(t.started))}}
}

// Event is a single log line under construction. Nothing is written until Log.
type Event struct {
	logger  *zap.Logger
	level   zapcore.Level
	message string
	fields  []zap.Field
}

func (e *Event) WithString(key, value string) *Event {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Event) WithInt(key string, value int) *Event {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Event) WithFloat(key string, value float64) *Event {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Event) WithBool(key string, value bool) *Event {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Event) WithUUID(key string, value uuid.UUID) *Event {
	e.fields = append(e.fields, zap.Stringer(key, value))
	return e
}

func (e *Event) WithParam(key string, value any) *Event {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Event) Log() {
	if ce := e.logger.Check(e.level, e.message); ce != nil {
		ce.Write(e.fields...)
	}
}
