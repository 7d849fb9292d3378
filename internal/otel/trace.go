package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/restaurant/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_MAIN_RESTAURANT)
