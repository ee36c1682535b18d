package article

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveFixture(t *testing.T) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile("testdata/arabic_article.html")
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchArticle(t *testing.T) {
	srv := serveFixture(t)

	var f Fetcher
	a, err := f.FetchArticle(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	assert.Contains(t, a.Title, "البيت والباب")
	assert.Equal(t, srv.URL+"/story", a.URL)
	assert.Contains(t, a.Text, "باب أحمر")

	sentences := Split(a.Text)
	require.NotEmpty(t, sentences)
	var seen bool
	for _, s := range sentences {
		for _, w := range s.Words {
			if w == "الباب" {
				seen = true
			}
		}
	}
	assert.True(t, seen, "expected the word الباب in %v", sentences)
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/big" {
			w.Write([]byte(strings.Repeat("ب", 100)))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := Fetcher{MaxSize: 50}
	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")

	_, err = f.Fetch(context.Background(), srv.URL+"/big")
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, srv.URL+"/big")
	assert.Error(t, err)
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("أغلق الباب! هل تريد أن تدخل؟ نعم.\nسطر جديد")
	assert.Equal(t, []string{"أغلق الباب!", "هل تريد أن تدخل؟", "نعم.", "سطر جديد"}, got)
	assert.Empty(t, SplitSentences(" \n\n "))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"بَابٌ", "في", "البيت"}, Words("بَابٌ، في 2024 البيت (ok)"))
	assert.Empty(t, Words("hello 123"))

	sentences := Split("hello. باب كبير. 42")
	require.Len(t, sentences, 1)
	assert.Equal(t, "باب كبير.", sentences[0].Text)
	assert.Equal(t, []string{"باب", "كبير"}, sentences[0].Words)
}

func TestStripTashkeel(t *testing.T) {
	assert.Equal(t, "باب", StripTashkeel("بَابٌ"))
	assert.Equal(t, "محمد", StripTashkeel("مُحَمَّد"))
	assert.Equal(t, "جميل", StripTashkeel("جميـــل"))
	// hamza carriers are letters, not marks
	assert.Equal(t, "أحمر", StripTashkeel("أَحْمَر"))
}
