// Package ingest counts the letters of analyzed texts: sentences are shaped
// and segmented on a worker pool and the totals are batch-written per source
// with a resumable checkpoint.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/japaniel/alifba/pkg/article"
	"github.com/japaniel/alifba/pkg/catalog"
	"github.com/japaniel/alifba/pkg/db"
	"github.com/japaniel/alifba/pkg/logger"
	"github.com/japaniel/alifba/pkg/segment"
	"github.com/japaniel/alifba/pkg/vocabulary"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Ingester segments sentences and stores letter and word counts.
type Ingester struct {
	DB    *sql.DB
	Index *vocabulary.Index
	// Segmentation controls how combos and ligatures are counted.
	Segmentation segment.Options
	// StripTashkeel drops vowel marks before segmenting, so only bare
	// letters are counted.
	StripTashkeel bool

	BatchSize     int
	FlushInterval time.Duration
	Logger        *logger.Logger
	// OnProgress is called periodically with the number of processed sentences and total sentences.
	OnProgress func(current, total int)

	// Concurrency settings
	Workers int

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface

	wordsOnce sync.Once
	wordIDs   map[string]string
}

// NewIngester creates a new Ingester.
func NewIngester(conn *sql.DB, ix *vocabulary.Index) *Ingester {
	return &Ingester{
		DB:            conn,
		Index:         ix,
		BatchSize:     50,
		FlushInterval: 100 * time.Millisecond,
		Workers:       4,
	}
}

type letterKey struct {
	id   string
	form catalog.Form
}

// wordData is one distinct word of a sentence.
type wordData struct {
	Word      string
	CatalogID string
	Count     int
}

// processedSentence holds the result of processing a sentence before DB ingestion
type processedSentence struct {
	Index    int
	Sentence string
	Words    []wordData
	Letters  map[letterKey]int
	Error    error
}

func (p processedSentence) letterTotal() int {
	n := 0
	for _, c := range p.Letters {
		n += c
	}
	return n
}

// catalogWord maps an article word to a catalog word id, matching either
// the exact spelling or the spelling without tashkeel.
func (ig *Ingester) catalogWord(w string) string {
	ig.wordsOnce.Do(func() {
		ig.wordIDs = make(map[string]string)
		if ig.Index == nil {
			return
		}
		for _, cw := range ig.Index.Catalog().Words() {
			if _, ok := ig.wordIDs[cw.Arabic]; !ok {
				ig.wordIDs[cw.Arabic] = cw.ID
			}
			bare := article.StripTashkeel(cw.Arabic)
			if _, ok := ig.wordIDs[bare]; !ok {
				ig.wordIDs[bare] = cw.ID
			}
		}
	})
	if id, ok := ig.wordIDs[w]; ok {
		return id
	}
	return ig.wordIDs[article.StripTashkeel(w)]
}

// Ingest processes sentences and saves their counts using concurrent workers
// and batched writes. It resumes after the last checkpoint of sourceID and
// returns the number of letter occurrences recorded.
func (ig *Ingester) Ingest(ctx context.Context, sourceID int64, sentences []article.Sentence) (int, error) {
	if ig.Index == nil {
		return 0, fmt.Errorf("ingest: no vocabulary index")
	}
	log := logger.OrNop(ig.Logger).With("source", sourceID)

	lastProcessed, err := db.GetSourceProgress(ig.DB, sourceID)
	if err != nil {
		log.Warn("failed to retrieve progress", "err", err)
		lastProcessed = -1
	}
	if lastProcessed >= 0 {
		log.Info("resuming", "sentence", lastProcessed+1, "skipped", lastProcessed+1)
	}

	totalSentences := len(sentences)
	startIdx := lastProcessed + 1
	if startIdx >= totalSentences {
		return 0, nil
	}

	workers := ig.Workers
	if workers <= 0 {
		workers = 1
	}
	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}
	resultCh := make(chan processedSentence, workers*2)
	closedResultCh := false
	doneCh := make(chan error, 1)

	var totalLetters int64

	bw := NewBatchWriter(ig.DB, ig.BatchSize, ig.FlushInterval, log)
	var batchErr error
	var batchErrMu sync.Mutex
	bw.OnError = func(e error) {
		batchErrMu.Lock()
		if batchErr == nil {
			batchErr = e
		}
		batchErrMu.Unlock()
	}

	defer func() {
		wp.Close()
		if !closedResultCh {
			close(resultCh)
		}
		// already closed on the normal path
		_ = bw.Close()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wp.Start(ctx)

	write := func(item processedSentence) error {
		return bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			for _, w := range item.Words {
				if err := db.AddSourceWord(tx, sourceID, w.Word, w.CatalogID, item.Sentence, w.Count); err != nil {
					return fmt.Errorf("failed to persist word %s: %w", w.Word, err)
				}
			}
			for k, n := range item.Letters {
				if err := db.AddLetterCount(tx, sourceID, k.id, k.form.String(), n); err != nil {
					return fmt.Errorf("failed to persist letter %s: %w", k.id, err)
				}
			}
			if err := db.UpdateSourceProgress(tx, sourceID, item.Index); err != nil {
				return fmt.Errorf("failed to save progress: %w", err)
			}
			atomic.AddInt64(&totalLetters, int64(item.letterTotal()))
			return nil
		})
	}

	go func() {
		defer close(doneCh)
		buffer := make(map[int]processedSentence)
		nextIdx := startIdx

		// drain writes every buffered result that continues the sequence.
		drain := func() error {
			for {
				item, ok := buffer[nextIdx]
				if !ok {
					return nil
				}
				delete(buffer, nextIdx)
				if err := write(item); err != nil {
					return err
				}
				if ig.OnProgress != nil && (nextIdx+1)%ig.BatchSize == 0 {
					ig.OnProgress(nextIdx+1, totalSentences)
				}
				nextIdx++
			}
		}

		for {
			select {
			case <-ctx.Done():
				doneCh <- ctx.Err()
				return
			default:
			}

			res, ok := <-resultCh
			if !ok {
				if err := drain(); err != nil {
					cancel()
					doneCh <- err
					return
				}
				if ig.OnProgress != nil {
					ig.OnProgress(nextIdx, totalSentences)
				}
				doneCh <- nil
				return
			}

			if res.Error != nil {
				// stop producers so they do not block on resultCh
				cancel()
				doneCh <- res.Error
				return
			}
			buffer[res.Index] = res
			if err := drain(); err != nil {
				cancel()
				doneCh <- err
				return
			}
		}
	}()

	var submitErr error
Loop:
	for i := startIdx; i < totalSentences; i++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		idx := i
		sent := sentences[i]
		job := func(ctx context.Context) error {
			res := ig.processSentence(idx, sent)
			select {
			case resultCh <- res:
			case <-ctx.Done():
			}
			return nil
		}

		if err := wp.SubmitCtx(ctx, job); err != nil {
			if err == ctx.Err() || err == ErrPoolClosed {
				break Loop
			}
			submitErr = fmt.Errorf("submit sentence %d: %w", idx, err)
			cancel()
			break Loop
		}
	}

	// Workers are done once Close returns, so no send can race the close.
	wp.Close()
	close(resultCh)
	closedResultCh = true

	consumerErr := <-doneCh
	if submitErr != nil {
		consumerErr = submitErr
	}

	if err := bw.Close(); err != nil && consumerErr == nil {
		consumerErr = err
	}
	batchErrMu.Lock()
	if batchErr != nil && consumerErr == nil {
		consumerErr = batchErr
	}
	batchErrMu.Unlock()

	n := int(atomic.LoadInt64(&totalLetters))
	st := bw.Stats()
	log.Info("ingest finished", "letters", n, "batches", st.Batches, "sentences", totalSentences-startIdx)
	return n, consumerErr
}

// processSentence shapes and segments every word of the sentence. It is the
// CPU-heavy part and runs on the pool.
func (ig *Ingester) processSentence(index int, sentence article.Sentence) processedSentence {
	seg := ig.Index.Segmenter()
	counts := make(map[string]int)
	var ordered []string
	for _, w := range sentence.Words {
		if ig.StripTashkeel {
			w = article.StripTashkeel(w)
		}
		if w == "" {
			continue
		}
		if _, ok := counts[w]; !ok {
			ordered = append(ordered, w)
		}
		counts[w]++
	}

	res := processedSentence{
		Index:    index,
		Sentence: sentence.Text,
		Letters:  make(map[letterKey]int),
	}
	for _, w := range ordered {
		n := counts[w]
		for _, o := range seg.Segment(seg.Shape(w), ig.Segmentation) {
			res.Letters[letterKey{id: o.Letter.ID(), form: o.Letter.Form()}] += n
		}
		res.Words = append(res.Words, wordData{Word: w, CatalogID: ig.catalogWord(w), Count: n})
	}
	return res
}

// IngestArticle records the article as a source and ingests its sentences.
func (ig *Ingester) IngestArticle(ctx context.Context, a *article.Article) (int64, int, error) {
	sourceID, err := db.CreateOrGetSource(ig.DB, "website_article", a.Title, a.Byline, a.SiteName, a.URL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to persist source: %w", err)
	}
	n, err := ig.Ingest(ctx, sourceID, article.Split(a.Text))
	return sourceID, n, err
}
