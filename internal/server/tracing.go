package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/calc"
)

// tracerName identifies this instrumentation scope. Spans are no-ops
// until the embedding process installs a global TracerProvider.
const tracerName = "github.com/agbru/bigcalc/internal/server"

// startEvalSpan opens a span covering one expression evaluation.
func startEvalSpan(ctx context.Context, engine string, exprLen int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "server.evaluate",
		trace.WithAttributes(
			attribute.String("rpn.engine", engine),
			attribute.Int("rpn.expr_bytes", exprLen),
		))
}

// endEvalSpan records the evaluation outcome and closes the span.
func endEvalSpan(span trace.Span, result calc.Result, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Bool("rpn.integer", result.IsInteger()),
			attribute.Int("rpn.digits", result.DigitCount()),
		)
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
