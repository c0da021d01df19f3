package generate_occurrences

import (
	"context"

	generateOccurrences "github.com/m04kA/SMC-VenueService/internal/usecase/generate_occurrences"
)

type GenerateOccurrencesUseCase interface {
	Execute(ctx context.Context, req *generateOccurrences.Request) (*generateOccurrences.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
