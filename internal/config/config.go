// Package config persists layout parameters on behalf of the host
// application. The engine never reads or writes files; everything here is
// host plumbing around pkg/layout.Params.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/recera/graphlens/pkg/layout"
)

// File is the on-disk schema.
type File struct {
	Layout fileParams `yaml:"layout"`
}

// fileParams mirrors layout.Params with pointer fields, so a partial file
// only overrides the parameters it actually mentions. Zero is a legal value
// for some of them (gravity: 0 turns centering off), so presence cannot be
// inferred from the value itself.
type fileParams struct {
	LinkDistance  *float64 `yaml:"linkDistance,omitempty"`
	Charge        *float64 `yaml:"charge,omitempty"`
	Gravity       *float64 `yaml:"gravity,omitempty"`
	NodeRadius    *float64 `yaml:"nodeRadius,omitempty"`
	CurveSpacing  *float64 `yaml:"curveSpacing,omitempty"`
	NodeLabelZoom *float64 `yaml:"nodeLabelZoom,omitempty"`
	EdgeLabelZoom *float64 `yaml:"edgeLabelZoom,omitempty"`
	LabelDistance *float64 `yaml:"labelDistance,omitempty"`
	Dimensions    *int     `yaml:"dimensions,omitempty"`
}

// DefaultPath returns the per-user config location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(base, "graphlens", "config.yaml"), nil
}

// Load reads parameters from path, merging the file over the documented
// defaults. A missing file is not an error; it yields the defaults.
func Load(path string) (layout.Params, error) {
	params := layout.DefaultParams()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return params, nil
	}
	if err != nil {
		return params, fmt.Errorf("failed to read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return params, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	merge(&params, f.Layout)
	return params, nil
}

// Save writes parameters to path, creating parent directories as needed.
func Save(path string, params layout.Params) error {
	data, err := yaml.Marshal(File{Layout: fileParams{
		LinkDistance:  &params.LinkDistance,
		Charge:        &params.Charge,
		Gravity:       &params.Gravity,
		NodeRadius:    &params.NodeRadius,
		CurveSpacing:  &params.CurveSpacing,
		NodeLabelZoom: &params.NodeLabelZoom,
		EdgeLabelZoom: &params.EdgeLabelZoom,
		LabelDistance: &params.LabelDistance,
		Dimensions:    &params.Dimensions,
	}})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// merge copies fields present in the file over dst.
func merge(dst *layout.Params, src fileParams) {
	if src.LinkDistance != nil {
		dst.LinkDistance = *src.LinkDistance
	}
	if src.Charge != nil {
		dst.Charge = *src.Charge
	}
	if src.Gravity != nil {
		dst.Gravity = *src.Gravity
	}
	if src.NodeRadius != nil {
		dst.NodeRadius = *src.NodeRadius
	}
	if src.CurveSpacing != nil {
		dst.CurveSpacing = *src.CurveSpacing
	}
	if src.NodeLabelZoom != nil {
		dst.NodeLabelZoom = *src.NodeLabelZoom
	}
	if src.EdgeLabelZoom != nil {
		dst.EdgeLabelZoom = *src.EdgeLabelZoom
	}
	if src.LabelDistance != nil {
		dst.LabelDistance = *src.LabelDistance
	}
	if src.Dimensions != nil {
		dst.Dimensions = *src.Dimensions
	}
}
