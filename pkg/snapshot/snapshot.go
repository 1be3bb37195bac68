// Package snapshot persists fetched box-office weeks so analyses can be
// replayed offline. Snapshots are JSON documents, optionally LZ4-framed,
// validated against an embedded JSON schema on load.
package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

// Sentinel errors.
var (
	ErrNoSnapshot      = errors.New("no snapshot found")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Version is the current snapshot document version.
const Version = 1

const (
	filePrefix    = "boxoffice-"
	extJSON       = ".json"
	extLZ4        = ".json.lz4"
	fetchedLayout = "20060102T150405Z"
	dirPerm       = 0o755
	filePerm      = 0o644
)

//go:embed schema.json
var schemaJSON []byte

// Snapshot is one fetched week.
type Snapshot struct {
	Version   int              `json:"version"`
	RunID     string           `json:"run_id"`
	FetchedAt time.Time        `json:"fetched_at"`
	Week      string           `json:"week"`
	ShowRange string           `json:"show_range,omitempty"`
	Titles    []movie.RawTitle `json:"titles"`
}

// Store reads and writes snapshots under one directory.
type Store struct {
	fs       afero.Fs
	dir      string
	compress bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression writes new snapshots LZ4-framed.
func WithCompression(enabled bool) StoreOption {
	return func(s *Store) {
		s.compress = enabled
	}
}

// NewStore creates a Store rooted at dir on fs.
func NewStore(fs afero.Fs, dir string, opts ...StoreOption) *Store {
	s := &Store{fs: fs, dir: dir}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Save writes snap and returns its path. The file is written to a temporary
// name first and renamed into place.
func (s *Store) Save(snap *Snapshot) (string, error) {
	if snap.Version == 0 {
		snap.Version = Version
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	ext := extJSON

	if s.compress {
		data, err = compress(data)
		if err != nil {
			return "", err
		}

		ext = extLZ4
	}

	mkdirErr := s.fs.MkdirAll(s.dir, dirPerm)
	if mkdirErr != nil {
		return "", fmt.Errorf("create snapshot dir: %w", mkdirErr)
	}

	name := filePrefix + snap.Week + "-" + snap.FetchedAt.UTC().Format(fetchedLayout) + ext
	target := path.Join(s.dir, name)
	tmp := target + ".tmp"

	writeErr := afero.WriteFile(s.fs, tmp, data, filePerm)
	if writeErr != nil {
		return "", fmt.Errorf("write snapshot: %w", writeErr)
	}

	renameErr := s.fs.Rename(tmp, target)
	if renameErr != nil {
		return "", fmt.Errorf("rename snapshot: %w", renameErr)
	}

	return target, nil
}

// Load reads, validates, and decodes the snapshot at p.
func (s *Store) Load(p string) (*Snapshot, error) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", p, err)
	}

	if strings.HasSuffix(p, extLZ4) {
		data, err = decompress(data)
		if err != nil {
			return nil, err
		}
	}

	validateErr := Validate(data)
	if validateErr != nil {
		return nil, fmt.Errorf("%s: %w", p, validateErr)
	}

	var snap Snapshot

	decodeErr := json.Unmarshal(data, &snap)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSnapshot, p, decodeErr)
	}

	return &snap, nil
}

// Latest returns the path of the most recently fetched snapshot. A non-empty
// week (Monday, YYYYMMDD) restricts the search to that week.
func (s *Store) Latest(week string) (string, error) {
	paths, err := s.List()
	if err != nil {
		return "", err
	}

	var (
		best        string
		bestFetched string
	)

	for _, p := range paths {
		fileWeek, fetched, ok := parseName(path.Base(p))
		if !ok || (week != "" && fileWeek != week) {
			continue
		}

		if fetched > bestFetched || (fetched == bestFetched && p > best) {
			best, bestFetched = p, fetched
		}
	}

	if best == "" {
		return "", ErrNoSnapshot
	}

	return best, nil
}

// List returns every snapshot path in the store, sorted by name. A missing
// directory yields an empty list.
func (s *Store) List() ([]string, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot dir: %w", err)
	}

	if !exists {
		return []string{}, nil
	}

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("list snapshot dir: %w", err)
	}

	paths := make([]string, 0, len(infos))

	for _, info := range infos {
		if info.IsDir() {
			continue
		}

		if _, _, ok := parseName(info.Name()); ok {
			paths = append(paths, path.Join(s.dir, info.Name()))
		}
	}

	slices.Sort(paths)

	return paths, nil
}

// Validate checks data against the embedded snapshot schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		problems = append(problems, resErr.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(problems, "; "))
}

// parseName splits "boxoffice-<week>-<fetched>.json[.lz4]".
func parseName(name string) (week, fetched string, ok bool) {
	if !strings.HasPrefix(name, filePrefix) {
		return "", "", false
	}

	var stem string

	switch {
	case strings.HasSuffix(name, extLZ4):
		stem = strings.TrimSuffix(name, extLZ4)
	case strings.HasSuffix(name, extJSON):
		stem = strings.TrimSuffix(name, extJSON)
	default:
		return "", "", false
	}

	week, fetched, ok = strings.Cut(strings.TrimPrefix(stem, filePrefix), "-")
	if !ok || len(week) != len(movie.OpenDateLayout) || len(fetched) != len(fetchedLayout) {
		return "", "", false
	}

	return week, fetched, true
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := lz4.NewWriter(&buf)

	_, err := zw.Write(data)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return nil, fmt.Errorf("compress snapshot: %w", closeErr)
	}

	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %w", ErrInvalidSnapshot, err)
	}

	return out, nil
}
