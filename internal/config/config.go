// Package config holds the application configuration and shared constants.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Content  ContentConfig  `yaml:"content"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Upload   UploadConfig   `yaml:"upload"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Inkwell"`
	Description string `yaml:"description" default:"A blog front end"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"8080"`
}

// APIConfig points at the remote posts/auth/upload API.
// BaseURL may be overridden with the API_URL environment variable.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" default:"http://localhost:5000/api"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"15"`
}

type ContentConfig struct {
	// Format selects how post content is interpreted when rendering:
	// "html" trusts the rich-text editor output as-is, "markdown" renders
	// it through the markdown pipeline with syntax highlighting.
	Format      string `yaml:"format" default:"html"`
	SyntaxTheme string `yaml:"syntax_theme" default:"gruvbox"`
}

type AutosaveConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Backend string `yaml:"backend" default:"sqlite"`
	Path    string `yaml:"path" default:"./drafts.db"`
	// Compression of stored draft payloads: "zstd" or "gzip".
	Compression string `yaml:"compression" default:"zstd"`
}

type UploadConfig struct {
	// Backend "api" delegates cover uploads to the remote API's /upload
	// endpoint; "s3" stores them in an S3-compatible bucket directly.
	Backend string   `yaml:"backend" default:"api"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint      string `yaml:"endpoint" default:""`
	Region        string `yaml:"region" default:"auto"`
	Bucket        string `yaml:"bucket" default:""`
	PublicBaseURL string `yaml:"public_base_url" default:""`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if field.String() == "" {
				field.SetString(defaultValue)
			}
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
