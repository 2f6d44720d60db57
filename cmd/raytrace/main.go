// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command raytrace renders a .scn scene description to a TGA image.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gazed/pathtrace/internal/partition"
	"github.com/gazed/pathtrace/internal/pathtrace"
	"github.com/gazed/pathtrace/internal/raster"
	"github.com/gazed/pathtrace/internal/rconfig"
	"github.com/gazed/pathtrace/internal/scene"
	"github.com/gazed/pathtrace/internal/sceneio"
)

// fs is a dedicated FlagSet rather than the package-level flag.CommandLine:
// the default flag.ExitOnError terminates with status 2 on a bad flag,
// but spec.md §7 requires every configuration error - including "unknown
// CLI flag, missing argument" - to exit 1. flag.ContinueOnError lets main
// route parse failures through the same exit-1 path as every other fatal
// error instead.
var fs = flag.NewFlagSet("raytrace", flag.ContinueOnError)

// Flags, registered under both their short and long forms against the
// same pointer, the way esimov-caire/cmd/caire declares its flag vars.
var (
	scenePath      = fs.String("scene", "data/scene.scn", "scene file")
	output         = fs.String("output", "output/render.tga", "image file")
	resolution     = fs.Int("resolution", 512, "vertical pixels")
	samples        = fs.Int("samples", 16, "super-samples per axis per pixel")
	bounces        = fs.Int("bounces", 4, "max bounces per sample")
	noPartition    = fs.Bool("no-spatial-partition", false, "disable the spatial partition (flat intersection)")
	objectsPerLeaf = fs.Int("objects-per-leaf", 8, "partition leaf capacity")
	leafDepth      = fs.Int("leaf-depth", 32, "partition max depth")
	distance       = fs.Float64("distance", math.Inf(1), "world half-extent for the partition root")
	debug          = fs.Bool("debug", false, "print sampled diagnostics")
	configPath     = fs.String("config", "", "optional YAML render profile")

	// gammaEnabled has no CLI flag of its own (spec.md §6 doesn't list
	// one). It stays at its default unless a YAML profile is loaded, in
	// which case the profile's gamma: field takes over outright - a
	// profile that wants the default must say so explicitly.
	gammaEnabled = true
)

func init() {
	short := map[string]string{
		"s": "scene", "o": "output", "r": "resolution", "p": "samples", "b": "bounces",
		"ns": "no-spatial-partition", "ol": "objects-per-leaf", "ld": "leaf-depth",
		"di": "distance", "d": "debug", "c": "config",
	}
	for alias, name := range short {
		f := fs.Lookup(name)
		fs.Var(f.Value, alias, "shorthand for --"+name)
	}
}

func main() {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "raytrace: offline CPU path tracer\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	if *debug {
		logLevel.Set(slog.LevelDebug)
	}

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.Any("err", err))
		os.Exit(1)
	}
}

// explicitlySet reports which flags the user actually passed, so a YAML
// profile's values can be told apart from the package's own zero-value
// defaults: CLI flags the user set win over the profile, the profile
// wins over the built-in defaults above.
func explicitlySet() map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// checkPositive reports a config error for any of -r/-p/-b that is not a
// positive integer, per spec.md §6's "+int" flags and §7's configuration-
// error contract: a silently blank or malformed image is not an
// acceptable substitute for a reported failure.
func checkPositive() error {
	for _, f := range []struct {
		name string
		val  int
	}{
		{"resolution", *resolution},
		{"samples", *samples},
		{"bounces", *bounces},
	} {
		if f.val <= 0 {
			return fmt.Errorf("raytrace: --%s must be a positive integer, got %d", f.name, f.val)
		}
	}
	return nil
}

func run(logger *slog.Logger) error {
	set := explicitlySet()

	var profile *rconfig.Profile
	if *configPath != "" {
		p, err := rconfig.Load(*configPath)
		if err != nil {
			return err
		}
		profile = p
		applyProfile(profile, set)
		if *debug {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	if err := checkPositive(); err != nil {
		return err
	}

	logger.Info("loading scene", slog.String("path", *scenePath))
	sc, err := sceneio.ParseFile(*scenePath)
	if err != nil {
		return fmt.Errorf("raytrace: load scene: %w", err)
	}

	in, buildStats := buildIntersector(sc, logger)
	if buildStats != "" {
		logger.Debug(buildStats)
	}

	opts := pathtrace.Options{
		VerticalResolution: *resolution,
		Samples:            *samples,
		MaxBounces:         *bounces,
	}

	start := time.Now()
	img, stats := pathtrace.Render(sc, in, opts)
	logger.Info("render complete",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int64("rays", stats.Rays),
		slog.Int64("leaves", stats.Leaves),
		slog.Int64("primitives", stats.Primitives),
	)

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		return fmt.Errorf("raytrace: create output dir: %w", err)
	}
	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("raytrace: create %s: %w", *output, err)
	}
	defer f.Close()

	if err := raster.Encode(f, img, gammaEnabled); err != nil {
		return fmt.Errorf("raytrace: encode %s: %w", *output, err)
	}
	logger.Info("wrote image", slog.String("path", *output))
	return nil
}

// buildIntersector constructs either a partition-backed or flat-list
// Intersector per -ns/--no-spatial-partition, returning a debug summary
// line for the caller to log at Debug level.
func buildIntersector(sc *scene.Scene, logger *slog.Logger) (pathtrace.Intersector, string) {
	if *noPartition {
		return pathtrace.FlatIntersector{Prims: sc.Primitives}, "spatial partition disabled, using flat intersection"
	}
	params := partition.Params{
		MaxObjectsPerLeaf: *objectsPerLeaf,
		MaxDepth:          *leafDepth,
		MaxDistance:       float32(*distance),
		ScratchBudget:     partition.DefaultParams().ScratchBudget,
	}
	p := partition.Build(sc.Primitives, sc.Camera.Origin, params, logger)
	return pathtrace.PartitionIntersector{Partition: p, Prims: sc.Primitives},
		fmt.Sprintf("partition built: %d nodes", len(p.Nodes))
}

// applyProfile fills in any flag the user did not explicitly pass with
// the YAML profile's value, leaving explicit CLI flags untouched.
func applyProfile(p *rconfig.Profile, set map[string]bool) {
	if p.Resolution != 0 && !set["resolution"] && !set["r"] {
		*resolution = p.Resolution
	}
	if p.Samples != 0 && !set["samples"] && !set["p"] {
		*samples = p.Samples
	}
	if p.Bounces != 0 && !set["bounces"] && !set["b"] {
		*bounces = p.Bounces
	}
	if p.NoSpatialPartition && !set["no-spatial-partition"] && !set["ns"] {
		*noPartition = true
	}
	if p.ObjectsPerLeaf != 0 && !set["objects-per-leaf"] && !set["ol"] {
		*objectsPerLeaf = p.ObjectsPerLeaf
	}
	if p.LeafDepth != 0 && !set["leaf-depth"] && !set["ld"] {
		*leafDepth = p.LeafDepth
	}
	if p.Distance != 0 && !set["distance"] && !set["di"] {
		*distance = float64(p.Distance)
	}
	if p.Debug && !set["debug"] && !set["d"] {
		*debug = true
	}
	gammaEnabled = p.Gamma
}
