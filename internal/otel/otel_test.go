package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Alturino/restaurant/internal/config"
	"github.com/Alturino/restaurant/internal/constants"
)

func TestInitOtelSdkDisabled(t *testing.T) {
	shutdowns, err := InitOtelSdk(t.Context(), constants.APP_MAIN_RESTAURANT, config.Otel{Enabled: false})
	require.NoError(t, err)
	assert.Empty(t, shutdowns)
	assert.NoError(t, ShutdownOtel(t.Context(), shutdowns))
}

func TestShutdownOtelJoinsErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	err := ShutdownOtel(t.Context(), []ShutdownFunc{
		func(c context.Context) error { return errA },
		func(c context.Context) error { return nil },
		func(c context.Context) error { return errB },
	})
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(t.Context(), "failing")
	RecordError(nil, span)
	RecordError(errors.New("boom"), span)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
}
