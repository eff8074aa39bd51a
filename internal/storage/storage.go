// Package storage provides the key/value records the study library persists
// into. Values are opaque bytes; Load and Save add the JSON layer.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrMalformed = errors.New("malformed record")
)

// Store is a synchronous string-keyed blob store.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}

// Load reads the JSON value stored under key.
func Load[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return out, nil
}

func Save[T any](ctx context.Context, s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func Clear(ctx context.Context, s Store, key string) error {
	if err := s.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

type prefixed struct {
	inner  Store
	prefix string
}

// Prefixed namespaces every key of inner under ns, e.g. "ns/verbumDeiHistory".
func Prefixed(inner Store, ns string) Store {
	ns = strings.Trim(ns, "/")
	if ns == "" {
		return inner
	}
	return prefixed{inner: inner, prefix: ns + "/"}
}

func (p prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.inner.Put(ctx, p.prefix+key, value)
}

func (p prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
