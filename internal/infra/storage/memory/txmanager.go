package memory

import "context"

// TxManager менеджер транзакций для хранилища в памяти
// Атомарность обеспечивается самим AppointmentStore, поэтому fn выполняется как есть
type TxManager struct{}

func (TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
