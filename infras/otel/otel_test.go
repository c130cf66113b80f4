package otel_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestNewWithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel-booking-test"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Create")
	scope.AddEvent("validated")
	scope.End()

	assert.True(t, oteltrace.SpanContextFromContext(ctx).IsValid())
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScope_TraceIfErrorSeesLateAssignment(t *testing.T) {
	create := func(scope otel.Scope) (err error) {
		defer scope.TraceIfError(&err)

		return errors.New("room taken")
	}

	span := record(t, func(scope otel.Scope) { _ = create(scope) })

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "room taken", span.Status().Description)
}

func TestScope_TraceIfErrorNil(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		var err error
		scope.TraceIfError(&err)
		scope.TraceIfError(nil)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"room_number": "101",
			"members":     2,
			"id":          int64(4),
			"overlap":     true,
			"rooms":       []string{"101", "102"},
		})
		scope.SetAttribute("ratio", 3.5)
	})

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, "101", got["room_number"].AsString())
	assert.Equal(t, int64(2), got["members"].AsInt64())
	assert.Equal(t, int64(4), got["id"].AsInt64())
	assert.True(t, got["overlap"].AsBool())
	assert.Equal(t, []string{"101", "102"}, got["rooms"].AsStringSlice())
	assert.Equal(t, "3.5", got["ratio"].AsString())
}
