package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gandalfthegui/dotenv/internal/dotenv"
)

// profile is the on-disk form of the default options:
//
//	path: config/.env
//	encoding: latin1
//	silent: false
//	export_compatible: true
type profile struct {
	Path             string `yaml:"path"`
	Encoding         string `yaml:"encoding"`
	Silent           bool   `yaml:"silent"`
	ExportCompatible bool   `yaml:"export_compatible"`
}

// loadProfile reads the profile at path. A missing file yields the zero
// profile.
func loadProfile(path string) (profile, error) {
	var p profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

func (p profile) options() dotenv.Options {
	return dotenv.Options{
		Path:             p.Path,
		Encoding:         p.Encoding,
		Silent:           p.Silent,
		ExportCompatible: p.ExportCompatible,
	}
}
