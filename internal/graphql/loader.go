package graphql

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed queries/*
var queriesFS embed.FS

// QueryLoader loads GraphQL queries from embedded files
type QueryLoader struct {
	cache map[string]string
	mu    sync.RWMutex
}

// NewQueryLoader creates a new query loader
func NewQueryLoader() *QueryLoader {
	return &QueryLoader{
		cache: make(map[string]string),
	}
}

// Load loads a query from the embedded filesystem
func (l *QueryLoader) Load(queryPath string) (string, error) {
	l.mu.RLock()
	if query, ok := l.cache[queryPath]; ok {
		l.mu.RUnlock()
		return query, nil
	}
	l.mu.RUnlock()

	content, err := queriesFS.ReadFile(path.Join("queries", queryPath))
	if err != nil {
		return "", fmt.Errorf("failed to load query %s: %w", queryPath, err)
	}

	query := string(content)

	l.mu.Lock()
	l.cache[queryPath] = query
	l.mu.Unlock()

	return query, nil
}

// MustLoad loads a query and panics on error (for initialization)
func (l *QueryLoader) MustLoad(queryPath string) string {
	query, err := l.Load(queryPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load required query %s: %v", queryPath, err))
	}
	return query
}

// List returns all available queries
func (l *QueryLoader) List() ([]string, error) {
	var queries []string

	err := fs.WalkDir(queriesFS, "queries", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".graphql") {
			queries = append(queries, strings.TrimPrefix(p, "queries/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}

	return queries, nil
}
