package interfaces

import "orders_etl/internal/domain/entities"

// IColumnarEncoder serializes one table slice into a single columnar file.
// The encoder writes exactly the columns of the table it is given.
//
//go:generate mockgen -source=columnar_encoder_interface.go -destination=mocks/mock_columnar_encoder_interface.go -package=mock_interfaces

type IColumnarEncoder interface {
	Encode(table entities.Table) ([]byte, error)
	ContentType() string
	Extension() string
}
