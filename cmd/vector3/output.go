package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/oxygene76/vector3/pkg/utils"
	"github.com/oxygene76/vector3/pkg/vector"
)

// printer renders results in the configured output format
type printer struct {
	w         io.Writer
	format    string
	precision int
}

func (p *printer) formatFloat(f float64) string {
	if p.precision < 0 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', p.precision, 64)
}

// Vector prints a single vector
func (p *printer) Vector(v *vector.Vector3) error {
	switch p.format {
	case utils.FormatText:
		_, err := fmt.Fprintf(p.w, "(%s, %s, %s)\n", p.formatFloat(v.X), p.formatFloat(v.Y), p.formatFloat(v.Z))
		return err
	case utils.FormatFixed:
		f, err := v.ToFixed()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.w, f.String())
		return err
	default:
		return p.Value(v)
	}
}

// Value prints a structured result. Text and fixed output have no structured
// form and fall back to YAML.
func (p *printer) Value(x any) error {
	if p.format == utils.FormatJSON {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(x); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
