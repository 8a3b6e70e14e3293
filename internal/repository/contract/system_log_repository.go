package contract

import (
	"context"

	"lexcircle-be/internal/model"
	"lexcircle-be/internal/repository/specification"
)

// SystemLogRepository stores audit rows written by the activity worker.
// Models are used directly here; there is no domain logic on log rows.
type SystemLogRepository interface {
	Create(ctx context.Context, log *model.SystemLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.SystemLog, error)
}
