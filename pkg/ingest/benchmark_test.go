package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/japaniel/alifba/pkg/article"
	"github.com/japaniel/alifba/pkg/db"
)

func generateBenchmarkSentences(n int) []article.Sentence {
	var sentences []article.Sentence
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("الباب بيت ولد جمل أحمر %d", i)
		sentences = append(sentences, article.Sentence{Text: text, Words: article.Words(text)})
	}
	return sentences
}

func BenchmarkIngestConcurrencyScaling(b *testing.B) {
	// On small in-memory runs worker overhead can outweigh the gain; this
	// guards against regressions rather than proving a speedup.
	counts := []int{1, 2, 4, 8}
	sentences := generateBenchmarkSentences(1000)
	ix := testIndex()

	for _, workers := range counts {
		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				conn := setupDB(b)
				_, _ = conn.Exec("PRAGMA synchronous = OFF")

				sourceID, err := db.CreateOrGetSource(conn, "test", fmt.Sprintf("bench_%d_%d", workers, i), "", "", "")
				if err != nil {
					conn.Close()
					b.Fatalf("CreateOrGetSource failed: %v", err)
				}

				ingester := NewIngester(conn, ix)
				ingester.Workers = workers
				ingester.BatchSize = 100
				b.StartTimer()

				_, err = ingester.Ingest(context.Background(), sourceID, sentences)
				b.StopTimer()
				conn.Close()
				if err != nil {
					b.Fatalf("Ingest failed: %v", err)
				}
			}
		})
	}
}
