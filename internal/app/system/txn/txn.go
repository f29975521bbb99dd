// Package txn runs multi-document MongoDB transactions with a fallback
// for servers that cannot support them.
//
// Every membership mutation in this app must commit as one atomic unit.
// Transactions require a replica set (or mongos); a plain standalone
// mongod — the common local dev setup — rejects them. When that
// happens we log loudly and run the function without a transaction so
// development still works. Production deployments must run against a
// replica set to get the atomicity the membership invariants depend on.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction executes fn inside a MongoDB transaction. The context
// passed to fn carries the session; all collection operations inside fn
// must use it for the writes to be part of the transaction.
//
// On servers without transaction support, fn runs once without a
// transaction and a warning is logged.
func WithTransaction(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("mongo sessions unavailable; running without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		// Nothing committed: the transaction never started or aborted
		// cleanly, so a plain retry cannot observe partial state.
		logger.Warn("mongo transactions unavailable; running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate transactions cannot be used here.
//
//	20  IllegalOperation (e.g. "Transaction numbers are only allowed on
//	    a replica set member or mongos")
//	51  no such command / illegal operation variants
//	263 OperationNotSupportedInTransaction
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// keyword groups: a message matching two or more of these is treated as
// a transactions-not-supported condition even when the driver did not
// surface a typed CommandError.
var notSupportedKeywords = []string{
	"transaction",
	"session",
	"replica set",
	"not supported",
	"illegal operation",
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod, very old versions).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	hits := 0
	for _, kw := range notSupportedKeywords {
		if strings.Contains(msg, kw) {
			hits++
		}
	}
	return hits >= 2
}
