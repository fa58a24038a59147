// Package config provides the injected environment/configuration accessor.
//
// The core carries no ambient global state: instead of reading the process
// environment directly, the SDK is constructed with a Provider. Providers
// exist for the OS environment, .env files, YAML override files, static maps
// (tests), and ordered chains of the above.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider resolves named environment variables. Lookups with an empty name
// always miss.
type Provider interface {
	// GetEnvVariable returns the value and true when the name resolves,
	// or "" and false otherwise.
	GetEnvVariable(name string) (string, bool)
}

// OSEnv resolves variables from the process environment.
type OSEnv struct{}

// GetEnvVariable looks the name up with os.LookupEnv.
func (OSEnv) GetEnvVariable(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return os.LookupEnv(name)
}

// Static resolves variables from a fixed map. Intended for tests.
type Static map[string]string

// GetEnvVariable looks the name up in the map.
func (s Static) GetEnvVariable(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v, ok := s[name]
	return v, ok
}

// Chain resolves from the first provider that has the name.
type Chain []Provider

// GetEnvVariable walks the chain in order.
func (c Chain) GetEnvVariable(name string) (string, bool) {
	for _, p := range c {
		if v, ok := p.GetEnvVariable(name); ok {
			return v, true
		}
	}
	return "", false
}

// LoadDotEnv reads a .env file into a Static provider. A missing file is an
// error; the caller decides whether that is fatal.
func LoadDotEnv(path string) (Static, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}
	return Static(values), nil
}

// LoadYAML reads a flat string-to-string YAML file into a Static provider.
// Used for local override files next to the function source.
func LoadYAML(path string) (Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return Static(values), nil
}
