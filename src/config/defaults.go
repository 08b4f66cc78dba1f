package config

import "time"

// Threshold keys and their documented defaults
const (
	KeyFunctionComplexity = "function"
	KeyFileComplexity     = "file"

	KeyMinLength = "minLength"
	KeyMaxLength = "maxLength"

	KeyFileLines          = "fileLines"
	KeyFunctionLines      = "functionLines"
	KeyFunctionParameters = "functionParameters"
	KeyClassLines         = "classLines"
	KeyMethodLines        = "methodLines"

	KeyMinLines            = "minLines"
	KeyMinTokens           = "minTokens"
	KeySimilarityThreshold = "similarityThreshold"

	DefaultFunctionComplexity = 10
	DefaultFileComplexity     = 20

	DefaultMinLength = 3
	DefaultMaxLength = 30

	DefaultFileLines          = 300
	DefaultFunctionLines      = 50
	DefaultFunctionParameters = 5
	DefaultClassLines         = 200
	DefaultMethodLines        = 30

	DefaultMinLines            = 6
	DefaultMinTokens           = 50
	DefaultSimilarityThreshold = 0.85
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "quality-analyzer",
			Version:     "1.0.0",
			Description: "Source quality analysis engine",
		},
		Analysis: AnalysisConfig{
			Concurrency: 4,
			FileTimeout: 30 * time.Second,
			Languages:   []string{"javascript", "typescript"},
			MaxFileSize: 1 << 20,
		},
		Parser: ParserConfig{
			Mode:          "sidecar",
			SidecarSuffix: ".estree.json",
			Timeout:       30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:   3,
				BackoffFactor: 1.5,
				InitialDelay:  100 * time.Millisecond,
				MaxDelay:      5 * time.Second,
				RetryOnStatus: []int{502, 503, 504},
			},
		},
		Detectors: DetectorsConfig{
			Complexity: DetectorConfig{
				Enabled: true,
				Thresholds: Thresholds{
					KeyFunctionComplexity: DefaultFunctionComplexity,
					KeyFileComplexity:     DefaultFileComplexity,
				},
			},
			Naming: DetectorConfig{
				Enabled: true,
				Thresholds: Thresholds{
					KeyMinLength: DefaultMinLength,
					KeyMaxLength: DefaultMaxLength,
				},
			},
			Size: DetectorConfig{
				Enabled: true,
				Thresholds: Thresholds{
					KeyFileLines:          DefaultFileLines,
					KeyFunctionLines:      DefaultFunctionLines,
					KeyFunctionParameters: DefaultFunctionParameters,
					KeyClassLines:         DefaultClassLines,
					KeyMethodLines:        DefaultMethodLines,
				},
			},
			Duplication: DetectorConfig{
				Enabled: true,
				Thresholds: Thresholds{
					KeyMinLines:            DefaultMinLines,
					KeyMinTokens:           DefaultMinTokens,
					KeySimilarityThreshold: DefaultSimilarityThreshold,
				},
			},
		},
		Exclusions: ExclusionsConfig{
			FilePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/coverage/**", "**/*.min.js", "**/*.d.ts",
			},
		},
		Severity: SeverityConfig{
			MinSeverity: "low",
		},
		Output: OutputConfig{
			Formats:             []string{"json"},
			OutputDir:           ".",
			IncludeSuggestions:  true,
			IncludeCodeSnippets: false,
			SnippetLines:        5,
		},
		Logging: LoggingConfig{
			Level:            "info",
			Format:           "text",
			IncludeTimestamp: true,
		},
	}
}
