package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultInput  = "marbles.bmp"
	DefaultOutput = "img_complement.bmp"
)

// Config holds file names and transform switches
type Config struct {
	Input          string `yaml:"input"`
	Output         string `yaml:"output"`
	LegacyExtraRow bool   `yaml:"legacy_extra_row"`
	Permissive     bool   `yaml:"permissive"`
	Validate       bool   `yaml:"validate"`
	Verify         bool   `yaml:"verify"`
	Verbose        bool   `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
	}
}

// Load resolves the configuration: defaults, then the YAML file named by
// -config (if any), then every flag set explicitly in args.
func Load(name string, args []string) (*Config, error) {
	var (
		cfg  = Default()
		fs   = flag.NewFlagSet(name, flag.ContinueOnError)
		file = fs.String("config", "", "YAML configuration file")
		in   = fs.String("in", cfg.Input, "The input bitmap")
		out  = fs.String("out", cfg.Output, "The output bitmap")

		legacy     = fs.Bool("legacy-rows", false, "Process height+1 scan lines")
		permissive = fs.Bool("permissive", false, "Zero-fill truncated input instead of failing")
		validate   = fs.Bool("validate", false, "Reject anything but 24-bit uncompressed bitmaps")
		verify     = fs.Bool("verify", false, "Decode the output and check that it is grayscale")
		verbose    = fs.Bool("v", false, "Log transform statistics")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *file != "" {
		if err := cfg.readFile(*file); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = *in
		case "out":
			cfg.Output = *out
		case "legacy-rows":
			cfg.LegacyExtraRow = *legacy
		case "permissive":
			cfg.Permissive = *permissive
		case "validate":
			cfg.Validate = *validate
		case "verify":
			cfg.Verify = *verify
		case "v":
			cfg.Verbose = *verbose
		}
	})

	return cfg, cfg.check()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) check() error {
	if c.Input == "" {
		return fmt.Errorf("config: input file name is empty")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output file name is empty")
	}
	if c.Input == c.Output {
		return fmt.Errorf("config: input and output are the same file (%s)", c.Input)
	}
	return nil
}
