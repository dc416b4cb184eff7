package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Alx74909/Projet-ATLAS/config"
	"github.com/Alx74909/Projet-ATLAS/ml"
)

// ArtifactSource names one serialized artifact. Path is where it lives on
// disk; when it is absent or empty the file is downloaded from URL first.
type ArtifactSource struct {
	Name string
	Path string
	URL  string
}

type ArtifactLoader struct {
	client   *http.Client
	pipeline ArtifactSource
	selector ArtifactSource
	model    ArtifactSource

	mu     sync.Mutex
	bundle *ml.Bundle
}

func NewArtifactLoader(cfg config.ArtifactsConfig, client *http.Client) *ArtifactLoader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	source := func(name string, s config.ArtifactSourceConfig) ArtifactSource {
		path := s.Path
		if path == "" {
			path = filepath.Join(cfg.CacheDir, name+".json")
		}
		return ArtifactSource{Name: name, Path: path, URL: s.URL}
	}
	return &ArtifactLoader{
		client:   client,
		pipeline: source("pipeline", cfg.Pipeline),
		selector: source("selector", cfg.Selector),
		model:    source("model", cfg.Model),
	}
}

// Load fetches and decodes the three artifacts once per process. Later calls
// return the same bundle without touching disk or network.
func (l *ArtifactLoader) Load(ctx context.Context) (*ml.Bundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.bundle != nil {
		return l.bundle, nil
	}

	data, err := l.Fetch(ctx, l.pipeline)
	if err != nil {
		return nil, err
	}
	pipeline, err := ml.DecodePipeline(data)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", l.pipeline.Name, err)
	}

	data, err = l.Fetch(ctx, l.selector)
	if err != nil {
		return nil, err
	}
	selector, err := ml.DecodeSelector(data)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", l.selector.Name, err)
	}

	data, err = l.Fetch(ctx, l.model)
	if err != nil {
		return nil, err
	}
	classifier, err := ml.DecodeClassifier(data)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", l.model.Name, err)
	}

	l.bundle = &ml.Bundle{Pipeline: pipeline, Selector: selector, Classifier: classifier}
	return l.bundle, nil
}

// Fetch returns the artifact bytes, downloading into src.Path only when the
// file is missing or empty.
func (l *ArtifactLoader) Fetch(ctx context.Context, src ArtifactSource) ([]byte, error) {
	info, err := os.Stat(src.Path)
	switch {
	case err == nil && info.Size() > 0:
		artifactFetches.WithLabelValues(src.Name, "disk").Inc()
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %w", src.Name, err)
		}
		return data, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("stat artifact %s: %w", src.Name, err)
	}

	if src.URL == "" {
		return nil, fmt.Errorf("artifact %s not found at %s and no download URL configured", src.Name, src.Path)
	}
	log.Printf("artifact %s missing at %s, downloading from %s", src.Name, src.Path, src.URL)
	if err := l.download(ctx, src); err != nil {
		return nil, err
	}
	artifactFetches.WithLabelValues(src.Name, "remote").Inc()

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", src.Name, err)
	}
	return data, nil
}

func (l *ArtifactLoader) download(ctx context.Context, src ArtifactSource) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return fmt.Errorf("download artifact %s: %w", src.Name, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("download artifact %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download artifact %s: unexpected status %s", src.Name, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(src.Path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := src.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = fmt.Errorf("empty response body")
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("download artifact %s: %w", src.Name, err)
	}
	return os.Rename(tmp, src.Path)
}
