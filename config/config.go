package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration of a clustering job.
type Config struct {
	Clusters      int `yaml:"clusters" mapstructure:"clusters" validate:"min=1"`
	MaxIterations int `yaml:"max_iterations" mapstructure:"max_iterations" validate:"min=1"`
	Runs          int `yaml:"runs" mapstructure:"runs" validate:"min=1"`
	// Seed seeds the random source. Zero selects a time-based seed.
	Seed   int64  `yaml:"seed" mapstructure:"seed"`
	Metric string `yaml:"metric" mapstructure:"metric" validate:"oneof=euclidean squared_euclidean manhattan"`

	Input  Input  `yaml:"input" mapstructure:"input"`
	S3     S3     `yaml:"s3" mapstructure:"s3"`
	MinIO  MinIO  `yaml:"minio" mapstructure:"minio"`
	Log    Log    `yaml:"log" mapstructure:"log"`
	Output Output `yaml:"output" mapstructure:"output"`
}

// Input selects and describes the record source.
type Input struct {
	// URI is a local path, file://, s3:// or minio:// location. A trailing
	// slash reads every object below the prefix.
	URI       string  `yaml:"uri" mapstructure:"uri" validate:"required"`
	Header    bool    `yaml:"header" mapstructure:"header"`
	Delimiter string  `yaml:"delimiter" mapstructure:"delimiter" validate:"len=1"`
	Columns   Columns `yaml:"columns" mapstructure:"columns"`
}

// Columns holds the 0-based column positions of the record fields.
type Columns struct {
	ID     int `yaml:"id" mapstructure:"id" validate:"min=0"`
	Age    int `yaml:"age" mapstructure:"age" validate:"min=0"`
	Income int `yaml:"income" mapstructure:"income" validate:"min=0"`
	Score  int `yaml:"score" mapstructure:"score" validate:"min=0"`
}

// S3 configures the Amazon S3 client. Credentials come from the default
// AWS provider chain.
type S3 struct {
	Region       string `yaml:"region" mapstructure:"region"`
	Endpoint     string `yaml:"endpoint" mapstructure:"endpoint"`
	UsePathStyle bool   `yaml:"use_path_style" mapstructure:"use_path_style"`
}

// MinIO configures the MinIO client.
type MinIO struct {
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Region    string `yaml:"region" mapstructure:"region"`
	Secure    bool   `yaml:"secure" mapstructure:"secure"`
}

// Log configures structured logging.
type Log struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// Output configures reporting.
type Output struct {
	// Format is text (console percentages), log (structured) or none.
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text log none"`
	// Metrics dumps Prometheus metrics to stderr when the job ends.
	Metrics bool `yaml:"metrics" mapstructure:"metrics"`
}

// Default returns the configuration of the classic mall customer job.
func Default() Config {
	return Config{
		Clusters:      2,
		MaxIterations: 10,
		Runs:          5,
		Metric:        "euclidean",
		Input: Input{
			URI:       "Mall_Customers.csv",
			Header:    true,
			Delimiter: ",",
			Columns:   Columns{ID: 0, Age: 2, Income: 3, Score: 4},
		},
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
		Output: Output{
			Format: "text",
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SlogLevel maps Log.Level to a slog level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]FieldError, len(ve))
	for i, fe := range ve {
		fields[i] = FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Config."),
			Message: formatFieldError(fe),
		}
	}
	return &ValidationError{Fields: fields}
}

// FieldError is a single invalid setting.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid setting.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + " " + f.Message
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "len":
		return fmt.Sprintf("must have length %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return "is invalid"
	}
}
