// Package wordlist resolves a named wordlist to the raw []string that
// wordindex.BuildIndex expects, trying a local directory first and an
// optional BigQuery-backed dataset second. Both sources are adapters; the
// core never knows or cares which one supplied the words.
package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/charmbracelet/log"
	"google.golang.org/api/iterator"
)

// Loader resolves wordlist names against a local directory and, when
// Project and Dataset are both set, a BigQuery table as a fallback.
type Loader struct {
	Dir     string
	Project string
	Dataset string
}

// NewLoader returns a Loader rooted at dir, with the BigQuery fallback
// enabled only when both project and dataset are non-empty.
func NewLoader(dir, project, dataset string) *Loader {
	return &Loader{Dir: dir, Project: project, Dataset: dataset}
}

// Load resolves name to its raw word list. It tries the local directory
// first; if the file is absent and a BigQuery source is configured, it
// falls through to that. Comment lines (#-prefixed) and blank lines in a
// local file are skipped, not words.
func (l *Loader) Load(ctx context.Context, name string) ([]string, error) {
	words, err := l.loadLocal(name)
	if err == nil {
		log.Debug("wordlist: loaded from local file", "name", name, "count", len(words))
		return words, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if l.Project == "" || l.Dataset == "" {
		return nil, fmt.Errorf("wordlist: %q not found under %s and no BigQuery source is configured", name, l.Dir)
	}

	words, err = l.loadBigQuery(ctx, name)
	if err != nil {
		return nil, err
	}
	log.Debug("wordlist: loaded from bigquery", "name", name, "count", len(words))
	return words, nil
}

func (l *Loader) loadLocal(name string) ([]string, error) {
	f, err := os.Open(filepath.Join(l.Dir, name+".txt"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

// loadBigQuery reads every word scoped to name from the configured
// project.dataset.words table, one `word` column per row filtered by a
// `wordlist` scope column.
func (l *Loader) loadBigQuery(ctx context.Context, name string) ([]string, error) {
	client, err := bigquery.NewClient(ctx, l.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf("SELECT word FROM `%s.%s.words` WHERE wordlist = @name", l.Project, l.Dataset))
	q.Parameters = []bigquery.QueryParameter{{Name: "name", Value: name}}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("query.Read: %w", err)
	}

	var words []string
	for {
		var row struct{ Word string }
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		words = append(words, row.Word)
	}
	return words, nil
}
