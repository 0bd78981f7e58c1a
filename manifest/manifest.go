// Package manifest describes a version ladder in YAML and binds it to a
// catalog of named implementations.
//
// A manifest lists versions root first. Each entry names its predecessor
// (omitted for the root) and maps the operations it overrides to catalog names:
//
//	versions:
//	  - tag: v1
//	    overrides:
//	      formatResponse: response.v1
//	      formatValidationErrors: validation.v1
//	  - tag: v2
//	    predecessor: v1
//	  - tag: v3
//	    predecessor: v2
//	    overrides:
//	      formatResponse: response.v3
//
// A version without overrides is a pure pass-through layer.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sghaida/verchain/chain"
)

// Version is one ladder entry.
type Version struct {
	Tag         string            `yaml:"tag"`
	Predecessor string            `yaml:"predecessor,omitempty"`
	Overrides   map[string]string `yaml:"overrides,omitempty"`
}

// Manifest is the whole ladder, root first.
type Manifest struct {
	Versions []Version `yaml:"versions"`
}

// Parse decodes a manifest, rejecting unknown fields, and validates it.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the manifest shape without touching a chain. Every problem is
// reported in a single error.
//
// Ladder semantics (linearity, predecessor existence) are left to chain.Register
// so there is one source of truth for them.
func (m *Manifest) Validate() error {
	var problems []string

	if len(m.Versions) == 0 {
		problems = append(problems, "versions (must have at least 1)")
	}

	seen := make(map[string]struct{}, len(m.Versions))
	for i, v := range m.Versions {
		where := fmt.Sprintf("versions[%d]", i)

		if strings.TrimSpace(v.Tag) == "" {
			problems = append(problems, where+": missing tag")
		} else if _, err := chain.ParseTag(v.Tag); err != nil {
			problems = append(problems, where+": "+err.Error())
		} else {
			key := strings.ToLower(strings.TrimSpace(v.Tag))
			if _, dup := seen[key]; dup {
				problems = append(problems, where+": duplicate tag "+key)
			}
			seen[key] = struct{}{}
		}

		if v.Predecessor != "" {
			if _, err := chain.ParseTag(v.Predecessor); err != nil {
				problems = append(problems, where+": predecessor: "+err.Error())
			}
		}
		if i == 0 && v.Predecessor != "" {
			problems = append(problems, where+": root must not declare a predecessor")
		}

		for op, name := range v.Overrides {
			if strings.TrimSpace(op) == "" {
				problems = append(problems, where+": empty operation name")
			}
			if strings.TrimSpace(name) == "" {
				problems = append(problems, where+": operation "+op+" has no implementation name")
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("manifest: invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Apply registers every version of m on c in document order, then attaches
// overrides looked up in cat. Operations are applied in sorted order so
// failures are deterministic.
func (m *Manifest) Apply(c *chain.Chain, cat *Catalog) error {
	if c == nil {
		return errors.New("manifest: nil chain")
	}
	if cat == nil {
		return errors.New("manifest: nil catalog")
	}

	tags := make([]chain.Tag, len(m.Versions))
	for i, v := range m.Versions {
		tag, err := chain.ParseTag(v.Tag)
		if err != nil {
			return fmt.Errorf("manifest: versions[%d]: %w", i, err)
		}
		var pred chain.Tag
		if v.Predecessor != "" {
			if pred, err = chain.ParseTag(v.Predecessor); err != nil {
				return fmt.Errorf("manifest: versions[%d]: %w", i, err)
			}
		}
		if err := c.Register(tag, pred); err != nil {
			return fmt.Errorf("manifest: register %s: %w", tag, err)
		}
		tags[i] = tag
	}

	for i, v := range m.Versions {
		ops := make([]string, 0, len(v.Overrides))
		for op := range v.Overrides {
			ops = append(ops, op)
		}
		sort.Strings(ops)

		for _, op := range ops {
			impl, err := cat.Lookup(v.Overrides[op])
			if err != nil {
				return fmt.Errorf("manifest: %s.%s: %w", tags[i], op, err)
			}
			if err := c.Override(tags[i], op, impl); err != nil {
				return fmt.Errorf("manifest: %s.%s: %w", tags[i], op, err)
			}
		}
	}
	return nil
}

// Build creates a new chain from m and cat and checks every operation resolves
// at the root. The chain is returned unsealed so callers may extend it.
func (m *Manifest) Build(cat *Catalog) (*chain.Chain, error) {
	c := chain.New()
	if err := m.Apply(c, cat); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return c, nil
}
