// Package configloader loads service configuration from, in order of
// increasing priority: a yaml file, a .env file and the process environment.
package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const configFile = "config.yaml"

// Validator is implemented by configuration structs that can check their own
// invariants after loading.
type Validator interface {
	Validate() error
}

// Load reads the layered configuration for the named service and unmarshals
// it into T. Environment variables use the `<SERVICE>_` prefix with `_` as
// the section separator, e.g. CATALOG_SERVER_PORT -> server.port.
func Load[T Validator](serviceName string) (T, error) {
	var cfg T
	k := koanf.New(".")
	envPrefix := strings.ToUpper(serviceName) + "_"

	loadYamlFile(k)
	loadDotEnv(k, envPrefix)
	loadEnvironment(k, envPrefix)

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadYamlFile loads the optional config.yaml, the lowest-priority layer.
func loadYamlFile(k *koanf.Koanf) {
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file %q: %v", configFile, err)
		}
	}
}

// loadDotEnv loads an optional .env file, overriding the yaml layer.
func loadDotEnv(k *koanf.Koanf, envPrefix string) {
	envFileMap, err := godotenv.Read(".env")
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
		return
	}
	envMap := make(map[string]any, len(envFileMap))
	for key, value := range envFileMap {
		envMap[envKeyToPath(key, envPrefix)] = value
	}
	if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
		log.Printf("WARN: error loading .env config: %v", err)
	}
}

// loadEnvironment loads process environment variables, the highest priority.
func loadEnvironment(k *koanf.Koanf, envPrefix string) {
	transformer := func(key string) string {
		return envKeyToPath(key, envPrefix)
	}
	if err := k.Load(env.Provider(envPrefix, ".", transformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}
}

// envKeyToPath maps CATALOG_SERVER_PORT to server.port.
func envKeyToPath(key, envPrefix string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
	return strings.ReplaceAll(key, "_", ".")
}
