package formdef

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formflow/pkg/model"
)

// SourceKind identifies where a definition lives.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source points at a form definition document.
type Source struct {
	Kind     SourceKind
	Location string
}

// FileSource references a definition on disk.
func FileSource(path string) Source {
	return Source{Kind: SourceKindFile, Location: path}
}

// FSSource references a definition inside an fs.FS (embedded bundles).
func FSSource(path string) Source {
	return Source{Kind: SourceKindFS, Location: path}
}

// URLSource references a definition served over HTTP, typically the hosted
// builder's publish endpoint.
func URLSource(url string) Source {
	return Source{Kind: SourceKindURL, Location: url}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS supplies the filesystem used by FSSource lookups.
func WithFS(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URLSource lookups using the provided client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			clone := *client
			l.http = &clone
		}
	}
}

// WithTimeout bounds URLSource fetches. Ignored when zero.
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// Loader fetches definitions from files, embedded filesystems, or HTTP,
// then decodes and normalizes them.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader. HTTP support stays off unless a client is
// supplied.
func NewLoader(options ...LoaderOption) *Loader {
	loader := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(loader)
	}
	if loader.http != nil && loader.timeout > 0 && loader.http.Timeout == 0 {
		loader.http.Timeout = loader.timeout
	}
	return loader
}

// Fetch loads, decodes, and normalizes a definition from the source.
func (l *Loader) Fetch(ctx context.Context, src Source) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location)
	case SourceKindFS:
		if l.fs == nil {
			return model.Form{}, errors.New("formdef: loader has no filesystem configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location)
	case SourceKindURL:
		data, err = l.fetchHTTP(ctx, src.Location)
	default:
		return model.Form{}, fmt.Errorf("formdef: unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return model.Form{}, fmt.Errorf("formdef: fetch %s: %w", src.Location, err)
	}

	decoded, err := parseByLocation(src.Location, data)
	if err != nil {
		return model.Form{}, err
	}
	Normalize(&decoded)
	return decoded, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("http support disabled")
	}
	if url == "" {
		return nil, errors.New("url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func parseByLocation(location string, data []byte) (model.Form, error) {
	lower := strings.ToLower(location)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return ParseJSON(data)
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}
