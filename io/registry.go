package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/phil-mansfield/asce7/math/interpolate"
)

// Registry holds loaded tables so that each definition file is only read and
// built once. It is safe for concurrent use.
type Registry struct {
	tables *cache.Cache
	log    logrus.FieldLogger
}

// NewRegistry returns an empty Registry which logs to log. A nil log uses
// the standard logrus logger.
func NewRegistry(log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{tables: cache.New(cache.NoExpiration, 0), log: log}
}

// Load returns the table defined in fname, reading it if it has not already
// been loaded. YAML files (.yaml, .yml) are definition files and gcfg files
// (.ini, .cfg, .config) are curve configs. opts override the bounds policy
// of the file, and tables loaded with different overrides are stored
// separately.
func (r *Registry) Load(fname string, opts ...interpolate.Option) (*Table, error) {
	key, err := filepath.Abs(fname)
	if err != nil {
		return nil, err
	}
	if len(opts) > 0 {
		key = fmt.Sprintf("%s#%s", key, interpolate.NewBounds(opts...))
	}
	if t, ok := r.tables.Get(key); ok {
		return t.(*Table), nil
	}

	var t *Table
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".yaml", ".yml":
		t, err = ReadDefinition(fname, opts...)
	case ".ini", ".cfg", ".config":
		t, err = ReadCurvesConfig(fname, opts...)
	default:
		return nil, fmt.Errorf(
			"Cannot load %s: unrecognized extension '%s'.", fname, ext,
		)
	}
	if err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"file": fname, "kind": t.Kind, "labels": len(t.Labels()),
	}).Debugf("Loaded table '%s'", t.Name)

	// Another goroutine may have loaded the same file in the meantime, and
	// the first table stored wins.
	if err := r.tables.Add(key, t, cache.NoExpiration); err != nil {
		if prev, ok := r.tables.Get(key); ok {
			return prev.(*Table), nil
		}
	}
	return t, nil
}

// Add registers a table built in code under name.
func (r *Registry) Add(name string, t *Table) error {
	if err := r.tables.Add(name, t, cache.NoExpiration); err != nil {
		return fmt.Errorf("A table named '%s' is already registered.", name)
	}
	return nil
}

// Get returns the table registered under name, or the table loaded from the
// file name.
func (r *Registry) Get(name string) (*Table, bool) {
	if t, ok := r.tables.Get(name); ok {
		return t.(*Table), true
	}
	if key, err := filepath.Abs(name); err == nil {
		if t, ok := r.tables.Get(key); ok {
			return t.(*Table), true
		}
	}
	return nil, false
}

// Len returns the number of registered tables.
func (r *Registry) Len() int { return r.tables.ItemCount() }
