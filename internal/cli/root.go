package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/kclust/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. KCLUST_INPUT_URI.
const EnvPrefix = "KCLUST"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the kclust command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "kclust",
		Short: "k-means clustering of customer records",
		Long: `
kclust groups customer records by age, annual income and spending score.
Each run seeds centroids k-means++ style, then alternates assignment and
centroid updates until the centroids stop moving or the iteration budget
is spent.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "",
		"YAML configuration file. Overrides defaults; overridden by environment and flags.")

	root.AddCommand(newRunCommand(), newConfigCommand())
	return root
}

// newViper returns a viper instance preloaded with every config key so
// environment overrides resolve for keys that no flag or file sets.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := config.Default().Marshal()
	if err != nil {
		return nil, err
	}
	var defaults map[string]any
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	setDefaults(v, "", defaults)
	return v, nil
}

func setDefaults(v *viper.Viper, prefix string, m map[string]any) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// bindFlags binds each flag to its config key. Flags use dashes, keys use
// dots and underscores.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// loadConfig resolves the effective configuration for cmd.
func loadConfig(cmd *cobra.Command, keys map[string]string) (config.Config, error) {
	v, err := newViper()
	if err != nil {
		return config.Config{}, err
	}
	if err := bindFlags(v, cmd.Flags(), keys); err != nil {
		return config.Config{}, err
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("read config: %w", err)
		}
		// Strict parse first so unknown keys surface as errors.
		if _, err := config.Parse(data); err != nil {
			return config.Config{}, err
		}
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return config.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
