// Package config loads the target data layout: the handful of
// size/alignment constants the IR core treats as a placeholder for a real
// target-specific layout (pointer size, default struct alignment).
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// DataLayout carries the size/alignment constants a Module needs to
// interpret pointer types and lay out structs with no members of their
// own to derive an alignment from. These are the values the core
// specification documents as placeholder target constants; making them a
// loaded struct rather than literals turns the documented TODO into a
// configuration knob without changing the default behavior.
type DataLayout struct {
	// PointerBytes is the size and alignment, in bytes, of every pointer
	// type in a module using this layout.
	PointerBytes uint64 `toml:"pointer_bytes"`

	// StructAlignDefault is the alignment assigned to a struct with zero
	// members, since there is no member alignment to derive one from.
	StructAlignDefault uint64 `toml:"struct_align_default"`
}

// tomlDataLayout is the on-disk shape of a data layout file, e.g.:
//
//	[layout]
//	pointer_bytes = 8
//	struct_align_default = 8
type tomlDataLayout struct {
	Layout DataLayout `toml:"layout"`
}

// DefaultDataLayout returns the placeholder target the core specification
// documents: 8-byte pointers, 8-byte default struct alignment.
func DefaultDataLayout() DataLayout {
	return DataLayout{
		PointerBytes:       8,
		StructAlignDefault: 8,
	}
}

// LoadDataLayout reads a data layout from a TOML file at path. Missing
// fields fall back to DefaultDataLayout's values.
func LoadDataLayout(path string) (DataLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return DataLayout{}, fmt.Errorf("open data layout file %q: %w", path, err)
	}
	defer f.Close()

	doc := tomlDataLayout{Layout: DefaultDataLayout()}
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return DataLayout{}, fmt.Errorf("parse data layout file %q: %w", path, err)
	}

	if doc.Layout.PointerBytes == 0 {
		doc.Layout.PointerBytes = 8
	}
	if doc.Layout.StructAlignDefault == 0 {
		doc.Layout.StructAlignDefault = 8
	}

	return doc.Layout, nil
}
