// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rconfig loads an optional YAML render profile that supplies
// defaults the CLI flags of cmd/raytrace can override.
package rconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile mirrors the subset of cmd/raytrace's flags worth saving to a
// file and reusing across renders. Zero values mean "not set in this
// profile" so the CLI layer can tell a profile default apart from an
// explicit override.
type Profile struct {
	Resolution         int     `yaml:"resolution"`
	Samples            int     `yaml:"samples"`
	Bounces            int     `yaml:"bounces"`
	NoSpatialPartition bool    `yaml:"noSpatialPartition"`
	ObjectsPerLeaf     int     `yaml:"objectsPerLeaf"`
	LeafDepth          int     `yaml:"leafDepth"`
	Distance           float32 `yaml:"distance"`
	Gamma              bool    `yaml:"gamma"`
	Debug              bool    `yaml:"debug"`
}

// Load reads a yaml render profile from path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rconfig: read %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("rconfig: yaml %s: %w", path, err)
	}
	return &p, nil
}
