package v1

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"sigs.k8s.io/yaml"

	"ocm.software/open-component-model/webassets/branding"
)

//go:embed schema.json
var rawSchema []byte

const schemaURL = "https://ocm.software/schemas/webassets.config.ocm.software/v1"

// Schema returns the JSON schema of the configuration document.
func Schema() []byte {
	return bytes.Clone(rawSchema)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(rawSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add configuration schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile configuration schema: %w", err)
	}
	return schema, nil
})

// Load decodes and validates a YAML or JSON configuration document.
// Relative paths are kept as they are.
func Load(data []byte) (*Config, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := validateJSON(raw); err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads the configuration at path. Relative paths in the configuration are
// resolved against the directory of the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration file: %w", err)
	}
	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("unable to resolve configuration directory: %w", err)
	}
	cfg.resolvePaths(abs)
	return cfg, nil
}

// Validate checks cfg against the configuration schema.
func Validate(cfg *Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return validateJSON(raw)
}

func validateJSON(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("configuration does not match schema: %w", err)
	}
	return nil
}

func bundleLookup(bundle string) (branding.Lookup, error) {
	fi, err := os.Stat(bundle)
	if err != nil {
		return nil, fmt.Errorf("unable to access branding bundle: %w", err)
	}
	if fi.IsDir() {
		return branding.NewDirLookup(bundle), nil
	}
	lookup, err := branding.NewTarLookup(bundle)
	if err != nil {
		return nil, err
	}
	return lookup, nil
}
