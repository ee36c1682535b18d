package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/alifba/pkg/article"
	"github.com/japaniel/alifba/pkg/db"
	"github.com/japaniel/alifba/pkg/ingest"
	"github.com/japaniel/alifba/pkg/segment"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var reset, textFile bool
	var top int
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Count the letters of an Arabic article",
		Long:  "Fetches a web page (or reads a text file with --text-file), extracts its readable text and stores per-letter and per-word counts. Interrupted runs resume from the last stored sentence.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			p, err := a.pack(ctx)
			if err != nil {
				return err
			}
			ix, err := a.index(p)
			if err != nil {
				return err
			}
			conn, err := a.db()
			if err != nil {
				return err
			}

			var art *article.Article
			if textFile {
				b, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				abs, _ := filepath.Abs(args[0])
				art = &article.Article{URL: "file://" + abs, Title: filepath.Base(args[0]), Text: string(b)}
			} else {
				fmt.Fprintf(out, "Fetching %s...\n", args[0])
				art, err = (&article.Fetcher{}).FetchArticle(ctx, args[0])
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Title: %s\n", art.Title)

			sourceType := "website_article"
			if textFile {
				sourceType = "text_file"
			}
			sourceID, err := db.CreateOrGetSource(conn, sourceType, art.Title, art.Byline, art.SiteName, art.URL)
			if err != nil {
				return fmt.Errorf("failed to persist source: %w", err)
			}
			if reset {
				if err := db.ResetSource(conn, sourceID); err != nil {
					return err
				}
			}

			sentences := article.Split(art.Text)
			fmt.Fprintf(out, "Source %d: %d sentences\n", sourceID, len(sentences))

			ic := a.cfg.Ingest
			ig := ingest.NewIngester(conn, ix)
			ig.Segmentation = segment.Options{SeparateDiacritics: ic.SeparateDiacritics, SeparateVariations: ic.SeparateVariations}
			ig.StripTashkeel = ic.StripTashkeel
			ig.Workers = ic.Workers
			ig.BatchSize = ic.BatchSize
			ig.FlushInterval = ic.FlushInterval
			ig.Logger = a.log.With("component", "ingest", "source", sourceID)
			n, err := ig.Ingest(ctx, sourceID, sentences)
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}
			fmt.Fprintf(out, "Counted %d letter occurrences.\n", n)

			counts, err := db.GetLetterCounts(conn, sourceID)
			if err != nil {
				return err
			}
			if top > 0 && len(counts) > top {
				counts = counts[:top]
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LETTER\tFORM\tCOUNT")
			for _, c := range counts {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", c.LetterID, c.Form, c.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Discard stored counts for this source and start over")
	cmd.Flags().BoolVar(&textFile, "text-file", false, "Treat the argument as a local UTF-8 text file")
	cmd.Flags().IntVar(&top, "top", 20, "Show the N most frequent letters (0 for all)")
	return cmd
}
