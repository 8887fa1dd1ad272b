// Package catalog loads the static product document and narrows it by
// category and free-text search.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"routine-advisor-be/internal/entity"
)

// Loader fetches the full product list. Every call re-reads the source.
type Loader interface {
	Load(ctx context.Context) ([]entity.Product, error)
}

// NewLoader returns an HTTP loader for http(s) sources and a file loader otherwise.
func NewLoader(source string) Loader {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPLoader(source)
	}
	return NewFileLoader(source)
}

type FileLoader struct {
	Path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

func (l *FileLoader) Load(ctx context.Context) ([]entity.Product, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", l.Path, err)
	}
	return decode(data)
}

type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func NewHTTPLoader(url string) *HTTPLoader {
	return &HTTPLoader{
		URL: url,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (l *HTTPLoader) Load(ctx context.Context) ([]entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: status %d", resp.StatusCode)
	}
	return decode(data)
}

// decode parses {"products": [...]} and fills every derived key.
func decode(data []byte) ([]entity.Product, error) {
	var doc entity.Catalog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	products := make([]entity.Product, len(doc.Products))
	for i, p := range doc.Products {
		p.Key = p.DerivedKey()
		products[i] = p
	}
	return products, nil
}
