// internal/testutil/db.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inovatehub/hackhub/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// dbCounter makes database names unique across parallel tests in one run.
var dbCounter int64

// SetupTestDB connects to the test MongoDB (MONGO_TEST_URI, defaulting to
// mongodb://localhost:27017) and returns a fresh database for this test
// with all indexes in place, so uniqueness behaves as in production.
// The database is dropped and the client disconnected via t.Cleanup.
// Tests are skipped when no server is reachable, so the suite stays
// runnable on machines without a local Mongo.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("mongo not reachable at %s: %v", uri, err)
	}

	name := fmt.Sprintf("hackhub_test_%d_%d", time.Now().UnixNano(), atomic.AddInt64(&dbCounter, 1))
	db := client.Database(name)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer idxCancel()
	if err := indexes.EnsureAll(idxCtx, db, zap.NewNop()); err != nil {
		_ = client.Disconnect(idxCtx)
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with the default test deadline.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
