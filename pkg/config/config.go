// Package config loads compiler settings from TOML files.
package config

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"

	"animac/pkg/compiler"
	"animac/pkg/dvm"
	"animac/pkg/module"
)

// Config is the top-level configuration file layout.
type Config struct {
	Module ModuleConfig
}

// ModuleConfig holds the [Module] section.
type ModuleConfig struct {
	Version    uint64
	MinVersion uint64
	Flags      uint64
	// ByteOrder is "little" or "big".
	ByteOrder string
	// LegacyDataSize excludes terminators from the declared data size.
	LegacyDataSize bool
}

// Keys are the Go field names and unknown keys are rejected.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Module: ModuleConfig{
		Version:    dvm.Version,
		MinVersion: dvm.MinVersion,
		ByteOrder:  "little",
	}}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	if err != nil {
		return cfg, err
	}
	if _, err := ParseByteOrder(cfg.Module.ByteOrder); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return tomlSettings.Marshal(&cfg)
}

// ParseByteOrder maps "little" or "big" to a byte order. The empty string
// means little-endian.
func ParseByteOrder(name string) (dvm.ByteOrder, error) {
	switch strings.ToLower(name) {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", name)
}

// ModuleOptions returns the packager options described by the config.
func (c Config) ModuleOptions() module.Options {
	return module.Options{
		Version:        c.Module.Version,
		MinVersion:     c.Module.MinVersion,
		Flags:          c.Module.Flags,
		LegacyDataSize: c.Module.LegacyDataSize,
	}
}

// CompileOptions returns the compiler options described by the config.
func (c Config) CompileOptions() (compiler.Options, error) {
	order, err := ParseByteOrder(c.Module.ByteOrder)
	if err != nil {
		return compiler.Options{}, err
	}
	return compiler.Options{ByteOrder: order, Module: c.ModuleOptions()}, nil
}

// DecodeOptions returns the options to read back modules written with c.
func (c Config) DecodeOptions() (module.DecodeOptions, error) {
	order, err := ParseByteOrder(c.Module.ByteOrder)
	if err != nil {
		return module.DecodeOptions{}, err
	}
	return module.DecodeOptions{Order: order, LegacyDataSize: c.Module.LegacyDataSize}, nil
}
