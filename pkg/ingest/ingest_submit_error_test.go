package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/japaniel/alifba/pkg/db"
	_ "github.com/mattn/go-sqlite3"
)

// failingPool always returns an error on Submit to simulate producer error.
type failingPool struct{}

func (f *failingPool) Start(ctx context.Context) {}
func (f *failingPool) Submit(job Job) error      { return errors.New("submit failed") }
func (f *failingPool) SubmitCtx(ctx context.Context, job Job) error {
	return errors.New("submit failed")
}
func (f *failingPool) Close() {}

func TestIngestHandlesSubmitErrorClosesResultCh(t *testing.T) {
	conn := setupDB(t)
	defer conn.Close()

	sourceID, err := db.CreateOrGetSource(conn, "test", "SubmitError", "", "", "http://submit")
	if err != nil {
		t.Fatal(err)
	}

	ingester := NewIngester(conn, testIndex())
	// Inject failing pool so first Submit() returns an error
	ingester.PoolFactory = func(workers, queue int) WorkerPoolInterface { return &failingPool{} }

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = ingester.Ingest(ctx, sourceID, repeatSentence(10, "باب"))
	if err == nil {
		t.Fatalf("expected submit error, got nil")
	}
	if ctx.Err() != nil {
		t.Fatalf("ingest did not return before the deadline")
	}
}
