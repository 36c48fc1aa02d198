// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package storage persists trained models to disk.
//
// A model persists as three co-located artifacts under a caller-chosen
// name: the fitted regressor, the feature scaler, and the ordered
// feature-name list. The three are written and read as a logical unit; a
// partial artifact set on load is a hard error, while a missing primary
// artifact is ErrModelNotFound.
//
// Each artifact is gob-encoded, gzip-compressed, and carries a SHA-256
// checksum that is verified on load.
package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/wayfarer/internal/ml"
)

// ErrModelNotFound is returned by Load when no artifacts exist under the
// requested name.
var ErrModelNotFound = errors.New("model not found")

// ModelMetadata describes a persisted model.
type ModelMetadata struct {
	// Name is the caller-chosen model name (e.g. "budget", "ranking").
	Name string `json:"name"`

	// Algorithm is the regressor variant that was trained.
	Algorithm string `json:"algorithm"`

	// TrainedAt is when training completed.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact set was written.
	SavedAt time.Time `json:"saved_at"`

	// SampleCount is the number of training rows.
	SampleCount int `json:"sample_count"`

	// FeatureCount is the width of the feature schema.
	FeatureCount int `json:"feature_count"`

	// SizeBytes is the total compressed size of all three artifacts.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// ArtifactSet bundles everything a trained model needs to serve
// predictions: the fitted regressor, its scaler, and the feature order.
type ArtifactSet struct {
	Regressor ml.Regressor
	Scaler    *ml.Scaler
	Features  []string
	Metadata  ModelMetadata
}

// artifact is the on-disk envelope for a single blob.
type artifact struct {
	Metadata       ModelMetadata
	Checksum       string
	CompressedData []byte
}

// regressorEnvelope carries the regressor through gob as an interface
// value so the concrete variant is restored on load.
type regressorEnvelope struct {
	Regressor ml.Regressor
}

// Store manages model persistence under one base directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a model store at the given directory, creating it if
// needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the full artifact set under the given name and verifies all
// three files exist afterward.
func (s *Store) Save(_ context.Context, name string, set *ArtifactSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := set.Metadata
	meta.Name = name
	meta.SavedAt = time.Now()
	meta.FeatureCount = len(set.Features)
	if set.Regressor != nil {
		meta.Algorithm = set.Regressor.Algorithm()
	}

	paths := s.artifactPaths(name)
	payloads := []struct {
		path string
		data interface{}
	}{
		{paths[0], &regressorEnvelope{Regressor: set.Regressor}},
		{paths[1], set.Scaler},
		{paths[2], set.Features},
	}

	var totalBytes int64
	for _, p := range payloads {
		n, err := writeArtifact(p.path, p.data, meta)
		if err != nil {
			return fmt.Errorf("save model %q: %w", name, err)
		}
		totalBytes += n
	}

	// The three files are a unit: report failure if any is missing
	// post-write.
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("verify model %q artifact %s: %w", name, filepath.Base(path), err)
		}
	}

	meta.SizeBytes = totalBytes
	set.Metadata = meta
	return nil
}

// Load reads the artifact set stored under name. A missing primary
// artifact yields ErrModelNotFound; a primary without its companions is a
// partial set and fails hard.
func (s *Store) Load(_ context.Context, name string) (*ArtifactSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := s.artifactPaths(name)

	if _, err := os.Stat(paths[0]); err != nil {
		return nil, fmt.Errorf("model %q: %w", name, ErrModelNotFound)
	}

	var envelope regressorEnvelope
	meta, err := readArtifact(paths[0], &envelope)
	if err != nil {
		return nil, fmt.Errorf("load model %q regressor: %w", name, err)
	}

	var scaler ml.Scaler
	if _, err := readArtifact(paths[1], &scaler); err != nil {
		return nil, fmt.Errorf("load model %q: partial artifact set, scaler: %w", name, err)
	}

	var features []string
	if _, err := readArtifact(paths[2], &features); err != nil {
		return nil, fmt.Errorf("load model %q: partial artifact set, features: %w", name, err)
	}

	return &ArtifactSet{
		Regressor: envelope.Regressor,
		Scaler:    &scaler,
		Features:  features,
		Metadata:  *meta,
	}, nil
}

// Exists reports whether a complete artifact set is present under name.
func (s *Store) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, path := range s.artifactPaths(name) {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// List returns metadata for every stored model, read from the primary
// artifacts.
func (s *Store) List(_ context.Context) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read storage directory: %w", err)
	}

	var models []ModelMetadata
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".gob.gz") {
			continue
		}
		base := strings.TrimSuffix(name, ".gob.gz")
		if strings.HasSuffix(base, "_scaler") || strings.HasSuffix(base, "_features") {
			continue
		}

		var envelope regressorEnvelope
		meta, err := readArtifact(filepath.Join(s.baseDir, name), &envelope)
		if err != nil {
			continue
		}
		models = append(models, *meta)
	}
	return models, nil
}

// Delete removes all artifacts stored under name.
func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range s.artifactPaths(name) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete model %q: %w", name, err)
		}
	}
	return nil
}

// artifactPaths returns the three file paths for a model name, primary
// first.
func (s *Store) artifactPaths(name string) [3]string {
	return [3]string{
		filepath.Join(s.baseDir, name+".gob.gz"),
		filepath.Join(s.baseDir, name+"_scaler.gob.gz"),
		filepath.Join(s.baseDir, name+"_features.gob.gz"),
	}
}

// writeArtifact gob-encodes, compresses, and writes one blob with its
// checksum. Returns the compressed size.
func writeArtifact(path string, data interface{}, meta ModelMetadata) (int64, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(data); err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}

	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return 0, fmt.Errorf("compress: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return 0, fmt.Errorf("finalize compression: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // path is constructed from trusted name parameter
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close after write failure surfaces via encode error

	art := artifact{
		Metadata:       meta,
		Checksum:       hex.EncodeToString(hash[:]),
		CompressedData: compressed.Bytes(),
	}
	if err := gob.NewEncoder(f).Encode(art); err != nil {
		return 0, fmt.Errorf("write file: %w", err)
	}
	return int64(compressed.Len()), nil
}

// readArtifact reads one blob, verifies its checksum, and decodes into
// target.
func readArtifact(path string, target interface{}) (*ModelMetadata, error) {
	f, err := os.Open(path) //nolint:gosec // path is constructed from trusted name parameter
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close after read is not actionable

	var art artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(art.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != art.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", art.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &art.Metadata, nil
}

// Register gob types so regressors round-trip through the interface
// envelope.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(&ml.BaggingForest{})
	gob.Register(&ml.GradientBoosting{})
	gob.Register(&ml.Ridge{})
}
