package common

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

// EnvPrefix is prepended to every environment override (RESUME_OUTPUT_PATH, ...).
const EnvPrefix = "RESUME"

// Config holds all application configuration
type Config struct {
	InputPath  string          `mapstructure:"input_path" yaml:"input_path"`
	OutputPath string          `mapstructure:"output_path" yaml:"output_path"`
	Report     string          `mapstructure:"report" yaml:"report"`
	RunTimeout time.Duration   `mapstructure:"run_timeout" yaml:"run_timeout"`
	Log        LogConfig       `mapstructure:"log" yaml:"log"`
	Source     SourceConfig    `mapstructure:"source" yaml:"source"`
	Normalize  NormalizeConfig `mapstructure:"normalize" yaml:"normalize"`
	Rules      RulesConfig     `mapstructure:"rules" yaml:"rules"`
	History    HistoryConfig   `mapstructure:"history" yaml:"history"`
	Metrics    MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SourceConfig holds text-source configuration
type SourceConfig struct {
	Method    string    `mapstructure:"method" yaml:"method"`       // native | pdftotext
	Pdftotext string    `mapstructure:"pdftotext" yaml:"pdftotext"` // binary name or absolute path
	MaxPages  int       `mapstructure:"max_pages" yaml:"max_pages"` // 0 = no limit
	OCR       OCRConfig `mapstructure:"ocr" yaml:"ocr"`
}

// OCRConfig holds tesseract settings for images and scanned PDFs
type OCRConfig struct {
	Fallback  bool   `mapstructure:"fallback" yaml:"fallback"` // OCR PDFs that have no text layer
	Pdftoppm  string `mapstructure:"pdftoppm" yaml:"pdftoppm"`
	Tesseract string `mapstructure:"tesseract" yaml:"tesseract"`
	Lang      string `mapstructure:"lang" yaml:"lang"`
	DPI       int    `mapstructure:"dpi" yaml:"dpi"`
}

// NormalizeConfig holds text normalization flags
type NormalizeConfig struct {
	FoldCompat bool `mapstructure:"fold_compat" yaml:"fold_compat"`
}

// RulesConfig holds the heuristic word lists and phone scoring rules
type RulesConfig struct {
	SocialDomains []string    `mapstructure:"social_domains" yaml:"social_domains"`
	Blocklist     []string    `mapstructure:"blocklist" yaml:"blocklist"`
	TopLines      int         `mapstructure:"top_lines" yaml:"top_lines"`
	Phone         PhoneConfig `mapstructure:"phone" yaml:"phone"`
}

// PhoneConfig holds phone candidate bounds and the boost rule set
type PhoneConfig struct {
	CountryCodes  []string `mapstructure:"country_codes" yaml:"country_codes"`
	LeadingDigits string   `mapstructure:"leading_digits" yaml:"leading_digits"`
	Bonus         int      `mapstructure:"bonus" yaml:"bonus"`
	MinDigits     int      `mapstructure:"min_digits" yaml:"min_digits"`
	MaxDigits     int      `mapstructure:"max_digits" yaml:"max_digits"`
}

// HistoryConfig holds run-history store configuration; empty DSN disables it
type HistoryConfig struct {
	DSN         string        `mapstructure:"dsn" yaml:"dsn"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
}

// MetricsConfig holds the node-exporter textfile target; empty disables it
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputPath: "resume_extracted.xlsx",
		Report:     "bullets",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Source: SourceConfig{
			Method:    "native",
			Pdftotext: "pdftotext",
			OCR: OCRConfig{
				Fallback:  true,
				Pdftoppm:  "pdftoppm",
				Tesseract: "tesseract",
				Lang:      "eng",
				DPI:       300,
			},
		},
		Normalize: NormalizeConfig{FoldCompat: true},
		Rules: RulesConfig{
			SocialDomains: constants.SocialDomains(),
			Blocklist:     constants.NameBlocklist(),
			TopLines:      constants.DefaultTopLines,
			Phone: PhoneConfig{
				CountryCodes:  []string{constants.DefaultPhoneCountryCode},
				LeadingDigits: constants.DefaultPhoneLeadingDigits,
				Bonus:         constants.DefaultPhoneBonus,
				MinDigits:     constants.DefaultPhoneMinDigits,
				MaxDigits:     constants.DefaultPhoneMaxDigits,
			},
		},
		History: HistoryConfig{
			DialTimeout: 3 * time.Second,
		},
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// RESUME_* environment variables (highest precedence). An empty cfgFile
// searches ./resume-extractor.yaml and ~/.resume-extractor/resume-extractor.yaml.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("resume-extractor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.resume-extractor")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, NewAppError(CodeConfig, "read config file", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewAppError(CodeConfig, "decode config", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	cfg.Rules.SocialDomains = splitList(cfg.Rules.SocialDomains)
	cfg.Rules.Blocklist = splitList(cfg.Rules.Blocklist)
	cfg.Rules.Phone.CountryCodes = splitList(cfg.Rules.Phone.CountryCodes)
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("input_path", d.InputPath)
	v.SetDefault("output_path", d.OutputPath)
	v.SetDefault("report", d.Report)
	v.SetDefault("run_timeout", d.RunTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("source.method", d.Source.Method)
	v.SetDefault("source.pdftotext", d.Source.Pdftotext)
	v.SetDefault("source.max_pages", d.Source.MaxPages)
	v.SetDefault("source.ocr.fallback", d.Source.OCR.Fallback)
	v.SetDefault("source.ocr.pdftoppm", d.Source.OCR.Pdftoppm)
	v.SetDefault("source.ocr.tesseract", d.Source.OCR.Tesseract)
	v.SetDefault("source.ocr.lang", d.Source.OCR.Lang)
	v.SetDefault("source.ocr.dpi", d.Source.OCR.DPI)
	v.SetDefault("normalize.fold_compat", d.Normalize.FoldCompat)
	v.SetDefault("rules.social_domains", d.Rules.SocialDomains)
	v.SetDefault("rules.blocklist", d.Rules.Blocklist)
	v.SetDefault("rules.top_lines", d.Rules.TopLines)
	v.SetDefault("rules.phone.country_codes", d.Rules.Phone.CountryCodes)
	v.SetDefault("rules.phone.leading_digits", d.Rules.Phone.LeadingDigits)
	v.SetDefault("rules.phone.bonus", d.Rules.Phone.Bonus)
	v.SetDefault("rules.phone.min_digits", d.Rules.Phone.MinDigits)
	v.SetDefault("rules.phone.max_digits", d.Rules.Phone.MaxDigits)
	v.SetDefault("history.dsn", d.History.DSN)
	v.SetDefault("history.dial_timeout", d.History.DialTimeout)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// splitList flattens comma-separated entries ("a,b" from an env var) and trims blanks.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("report", c.Report, OneOf("bullets", "table")).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field("log.format", c.Log.Format, OneOf("text", "json")).
		Field("source.method", c.Source.Method, OneOf("native", "pdftotext")).
		Field("source.max_pages", c.Source.MaxPages, AtLeast(0)).
		Field("source.ocr.lang", c.Source.OCR.Lang, Required).
		Field("source.ocr.dpi", c.Source.OCR.DPI, AtLeast(72)).
		Field("rules.social_domains", c.Rules.SocialDomains, Required).
		Field("rules.top_lines", c.Rules.TopLines, AtLeast(1)).
		Field("rules.phone.leading_digits", c.Rules.Phone.LeadingDigits, Digits).
		Field("rules.phone.bonus", c.Rules.Phone.Bonus, AtLeast(0)).
		Field("rules.phone.min_digits", c.Rules.Phone.MinDigits, AtLeast(1)).
		Field("rules.phone.max_digits", c.Rules.Phone.MaxDigits, AtLeast(c.Rules.Phone.MinDigits))
	for _, cc := range c.Rules.Phone.CountryCodes {
		v.Field("rules.phone.country_codes", cc, Required, Digits)
	}
	if err := v.Error(); err != nil {
		return NewAppError(CodeConfig, "invalid configuration", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	return nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	header := []byte(`# resume-extractor configuration
# Every key can be overridden with a RESUME_ environment variable,
# e.g. RESUME_OUTPUT_PATH=out.csv or RESUME_RULES_PHONE_COUNTRY_CODES=91,44

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
