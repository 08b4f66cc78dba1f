package config

import "time"

// Config is the root configuration structure
type Config struct {
	Agent      AgentConfig      `yaml:"agent" toml:"agent"`
	Analysis   AnalysisConfig   `yaml:"analysis" toml:"analysis"`
	Parser     ParserConfig     `yaml:"parser" toml:"parser"`
	Detectors  DetectorsConfig  `yaml:"detectors" toml:"detectors"`
	Exclusions ExclusionsConfig `yaml:"exclusions" toml:"exclusions"`
	Severity   SeverityConfig   `yaml:"severity" toml:"severity"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// AgentConfig contains tool metadata
type AgentConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Version     string `yaml:"version" toml:"version"`
	Description string `yaml:"description" toml:"description"`
}

// AnalysisConfig controls file selection and batching
type AnalysisConfig struct {
	Concurrency int           `yaml:"concurrency" toml:"concurrency"`
	FileTimeout time.Duration `yaml:"file_timeout" toml:"file_timeout"`
	Languages   []string      `yaml:"languages" toml:"languages"`
	MaxFileSize int64         `yaml:"max_file_size" toml:"max_file_size"`
}

// ParserConfig selects and configures the external parser
type ParserConfig struct {
	Mode          string        `yaml:"mode" toml:"mode"` // command, http, sidecar
	Command       string        `yaml:"command" toml:"command"`
	Args          []string      `yaml:"args" toml:"args"`
	URL           string        `yaml:"url" toml:"url"`
	SidecarSuffix string        `yaml:"sidecar_suffix" toml:"sidecar_suffix"`
	Retry         RetryConfig   `yaml:"retry" toml:"retry"`
	Timeout       time.Duration `yaml:"timeout" toml:"timeout"`
}

// RetryConfig contains retry settings for the HTTP parser
type RetryConfig struct {
	MaxAttempts   int           `yaml:"max_attempts" toml:"max_attempts"`
	BackoffFactor float64       `yaml:"backoff_factor" toml:"backoff_factor"`
	InitialDelay  time.Duration `yaml:"initial_delay" toml:"initial_delay"`
	MaxDelay      time.Duration `yaml:"max_delay" toml:"max_delay"`
	RetryOnStatus []int         `yaml:"retry_on_status" toml:"retry_on_status"`
}

// DetectorsConfig contains settings for all detectors
type DetectorsConfig struct {
	Complexity  DetectorConfig `yaml:"complexity" toml:"complexity"`
	Naming      DetectorConfig `yaml:"naming" toml:"naming"`
	Size        DetectorConfig `yaml:"size" toml:"size"`
	Duplication DetectorConfig `yaml:"duplication" toml:"duplication"`
}

// DetectorConfig is the shape every detector is configured with: an enabled
// flag, numeric thresholds and detector-specific extras
type DetectorConfig struct {
	Enabled    bool       `yaml:"enabled" toml:"enabled"`
	Thresholds Thresholds `yaml:"thresholds" toml:"thresholds"`

	// Naming extras
	Patterns      map[string]string `yaml:"patterns,omitempty" toml:"patterns,omitempty"`
	GenericNames  []string          `yaml:"generic_names,omitempty" toml:"generic_names,omitempty"`
	Abbreviations []string          `yaml:"abbreviations,omitempty" toml:"abbreviations,omitempty"`
	AllowedNames  []string          `yaml:"allowed_names,omitempty" toml:"allowed_names,omitempty"`
}

// ExclusionsConfig contains exclusion patterns
type ExclusionsConfig struct {
	FilePatterns []string `yaml:"file_patterns" toml:"file_patterns"`
	Files        []string `yaml:"files" toml:"files"`
}

// SeverityConfig contains severity settings
type SeverityConfig struct {
	MinSeverity string `yaml:"min_severity" toml:"min_severity"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats             []string `yaml:"formats" toml:"formats"`
	OutputDir           string   `yaml:"output_dir" toml:"output_dir"`
	IncludeSuggestions  bool     `yaml:"include_suggestions" toml:"include_suggestions"`
	IncludeCodeSnippets bool     `yaml:"include_code_snippets" toml:"include_code_snippets"`
	SnippetLines        int      `yaml:"snippet_lines" toml:"snippet_lines"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level" toml:"level"`
	Format           string `yaml:"format" toml:"format"` // text, json
	File             string `yaml:"file" toml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp" toml:"include_timestamp"`
}
