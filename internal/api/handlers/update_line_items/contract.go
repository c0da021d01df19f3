package update_line_items

import (
	"context"

	updateLineItems "github.com/m04kA/SMC-VenueService/internal/usecase/update_line_items"
)

type UpdateLineItemsUseCase interface {
	Execute(ctx context.Context, req *updateLineItems.Request) (*updateLineItems.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
