// Package txn runs a function inside a MongoDB multi-document transaction,
// falling back to plain execution when the server does not support
// transactions (standalone servers, some hosted tiers).
//
// The fallback loses cross-document atomicity, so callers must order their
// writes to stay safe without it: the write whose failure is recoverable
// goes last.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a session transaction on db's client. If the
// deployment rejects transactions, fn is re-run once outside a transaction.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions not supported by server; running without transaction",
			zap.Error(err))
	}
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions. Matches the known command error codes and
// falls back to message heuristics for drivers/servers that only return
// text.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
