package model

// FunctionMetrics contains metrics for a single function/method
type FunctionMetrics struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"` // function, method, arrow
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Column    int    `json:"column"`
	ClassName string `json:"class_name,omitempty"`

	// Size metrics
	LineCount      int `json:"line_count"`
	ParameterCount int `json:"parameter_count"`

	// Complexity metrics
	CyclomaticComplexity int `json:"cyclomatic_complexity"`
	ConditionalCount     int `json:"conditional_count"`
	LoopCount            int `json:"loop_count"`
	LogicalCount         int `json:"logical_count"`
}

// ClassMetrics contains metrics for a single class
type ClassMetrics struct {
	Name        string `json:"name"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	Column      int    `json:"column"`
	LineCount   int    `json:"line_count"`
	MethodCount int    `json:"method_count"`
}
