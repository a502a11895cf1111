package fleet

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/fleet.yaml
var defaultDataset []byte

// Load reads a YAML or JSON dataset, chosen by file extension, and indexes
// it.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Decode(f, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("load fleet %s: %w", path, err)
	}
	return NewRegistry(ds)
}

// Decode reads a Dataset from r in the given format ("yaml", "yml" or
// "json").
func Decode(r io.Reader, format string) (Dataset, error) {
	var ds Dataset
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&ds); err != nil && err != io.EOF {
			return ds, err
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return ds, err
		}
	default:
		return ds, fmt.Errorf("unsupported format: %s", format)
	}
	return ds, nil
}

// Default returns the registry built from the bundled sample fleet.
func Default() (*Registry, error) {
	ds, err := Decode(bytes.NewReader(defaultDataset), "yaml")
	if err != nil {
		return nil, fmt.Errorf("decode bundled fleet: %w", err)
	}
	return NewRegistry(ds)
}
