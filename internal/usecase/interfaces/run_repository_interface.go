package interfaces

import (
	"context"

	"orders_etl/internal/domain/entities"
)

// IRunRepository abstracts DynamoDB persistence for the run audit trail.
//
//go:generate mockgen -source=run_repository_interface.go -destination=mocks/mock_run_repository_interface.go -package=mock_interfaces

type IRunRepository interface {
	Create(ctx context.Context, r entities.Run) (entities.Run, error)
	GetByID(ctx context.Context, id string) (entities.Run, error)
}
