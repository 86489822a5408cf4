package services

import (
	"context"
	"healthdash/internal/database"
	"healthdash/internal/logger"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionService runs a function inside a single database transaction.
// The transaction handle travels in the context; repositories pick it up
// through GetTransaction so nested calls share the same transaction.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txContextKey{}, tx)
		return fn(txCtx)
	})
}

// GetTransaction returns the transaction carried by the context, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}
