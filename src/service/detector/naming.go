package detector

import (
	"fmt"
	"regexp"
	"strings"

	"quality-analyzer/src/ast"
	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/util"
)

// nameRole is the kind of declaration a name belongs to
type nameRole string

const (
	roleFunction nameRole = "function"
	roleVariable nameRole = "variable"
	roleConstant nameRole = "constant"
	roleClass    nameRole = "class"
	roleMethod   nameRole = "method"
	roleProperty nameRole = "property"
)

// Pattern keys accepted in the naming detector's patterns map
const (
	PatternCamelCase    = "camelCase"
	PatternPascalCase   = "pascalCase"
	PatternConstantCase = "constantCase"
)

var defaultPatterns = map[string]string{
	PatternCamelCase:    `^[a-z][a-zA-Z0-9]*$`,
	PatternPascalCase:   `^[A-Z][a-zA-Z0-9]*$`,
	PatternConstantCase: `^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`,
}

var (
	defaultGenericNames  = []string{"temp", "tmp", "data", "item", "obj", "foo", "bar", "baz", "thing", "stuff", "val", "info"}
	defaultAbbreviations = []string{"btn", "txt", "msg", "cnt", "usr", "pwd", "img", "str", "arr", "num", "mgr"}
	defaultAllowedNames  = []string{"i", "j", "k", "id", "_"}

	numericName = regexp.MustCompile(`^[a-zA-Z_$]?\d+$`)
)

// declaredName is one identifier introduced by a declaration
type declaredName struct {
	name   string
	role   nameRole
	line   int
	column int
}

// NamingDetector checks declared identifiers against naming conventions
type NamingDetector struct {
	BaseDetector
	minLength     int
	maxLength     int
	patterns      map[nameRole]*regexp.Regexp
	patternText   map[nameRole]string
	generic       map[string]bool
	abbreviations map[string]bool
	allowed       map[string]bool
}

// NewNamingDetector creates a new naming detector
func NewNamingDetector(cfg config.DetectorConfig) *NamingDetector {
	d := &NamingDetector{BaseDetector: newBaseDetector("naming")}
	d.Configure(cfg)
	return d
}

// Configure replaces the configuration, compiling patterns and word lists
func (d *NamingDetector) Configure(cfg config.DetectorConfig) {
	d.BaseDetector.Configure(cfg)
	d.minLength = d.intThreshold(config.KeyMinLength, config.DefaultMinLength)
	d.maxLength = d.intThreshold(config.KeyMaxLength, config.DefaultMaxLength)

	camel := d.compilePattern(PatternCamelCase)
	pascal := d.compilePattern(PatternPascalCase)
	constant := d.compilePattern(PatternConstantCase)
	d.patterns = map[nameRole]*regexp.Regexp{
		roleFunction: camel,
		roleVariable: camel,
		roleMethod:   camel,
		roleProperty: camel,
		roleClass:    pascal,
		roleConstant: constant,
	}
	d.patternText = map[nameRole]string{
		roleFunction: "camelCase",
		roleVariable: "camelCase",
		roleMethod:   "camelCase",
		roleProperty: "camelCase",
		roleClass:    "PascalCase",
		roleConstant: "UPPER_SNAKE_CASE",
	}

	d.generic = wordSet(cfg.GenericNames, defaultGenericNames)
	d.abbreviations = wordSet(cfg.Abbreviations, defaultAbbreviations)
	d.allowed = wordSet(cfg.AllowedNames, defaultAllowedNames)
}

func (d *NamingDetector) compilePattern(key string) *regexp.Regexp {
	if expr, ok := d.cfg.Patterns[key]; ok && expr != "" {
		re, err := regexp.Compile(expr)
		if err == nil {
			return re
		}
		util.Warn("Detector naming: invalid %s pattern %q: %v, using default", key, expr, err)
	}
	return regexp.MustCompile(defaultPatterns[key])
}

func wordSet(words, defaults []string) map[string]bool {
	if len(words) == 0 {
		words = defaults
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// Detect runs naming detection
func (d *NamingDetector) Detect(file *model.ParsedFile) ([]model.Issue, error) {
	if !d.IsEnabled() || file.AST == nil {
		return nil, nil
	}

	names := collectNames(file.AST)
	util.Debug("Naming detector: checking %d names in %s", len(names), file.Path)

	var issues []model.Issue
	for _, n := range names {
		found, err := d.check(file, n)
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

type namingViolation struct {
	rule       string
	severity   model.Severity
	title      string
	detail     string
	suggestion string
}

func (d *NamingDetector) violations(n declaredName) []namingViolation {
	if d.allowed[strings.ToLower(n.name)] {
		return nil
	}

	var out []namingViolation
	length := len([]rune(n.name))
	lower := strings.ToLower(n.name)

	if length < d.minLength {
		out = append(out, namingViolation{"name-too-short", model.SeverityMedium, "Name too short",
			fmt.Sprintf("%s name %q has %d characters (minimum %d)", n.role, n.name, length, d.minLength),
			"Use a descriptive name that states the purpose"})
	}
	if length > d.maxLength {
		out = append(out, namingViolation{"name-too-long", model.SeverityLow, "Name too long",
			fmt.Sprintf("%s name %q has %d characters (maximum %d)", n.role, n.name, length, d.maxLength),
			"Shorten the name while keeping its meaning"})
	}
	if !d.patterns[n.role].MatchString(strings.TrimLeft(n.name, "_$")) {
		out = append(out, namingViolation{"naming-convention", model.SeverityLow, "Naming convention violation",
			fmt.Sprintf("%s name %q should be %s", n.role, n.name, d.patternText[n.role]),
			fmt.Sprintf("Rename to %s", d.patternText[n.role])})
	}
	if d.generic[lower] {
		out = append(out, namingViolation{"generic-name", model.SeverityHigh, "Generic name",
			fmt.Sprintf("%s name %q is a generic placeholder", n.role, n.name),
			"Name the value after what it holds or does"})
	}
	if d.abbreviations[lower] {
		out = append(out, namingViolation{"abbreviation", model.SeverityMedium, "Abbreviated name",
			fmt.Sprintf("%s name %q is an abbreviation", n.role, n.name),
			"Spell the word out"})
	}
	if numericName.MatchString(n.name) {
		out = append(out, namingViolation{"meaningless-name", model.SeverityMedium, "Meaningless name",
			fmt.Sprintf("%s name %q carries no meaning", n.role, n.name),
			"Replace the numbered name with a descriptive one"})
	}
	if strings.Contains(n.name, "__") {
		out = append(out, namingViolation{"consecutive-underscores", model.SeverityHigh, "Consecutive underscores",
			fmt.Sprintf("%s name %q contains consecutive underscores", n.role, n.name),
			"Use single underscores or camelCase"})
	}
	return out
}

func (d *NamingDetector) check(file *model.ParsedFile, n declaredName) ([]model.Issue, error) {
	var issues []model.Issue
	for _, v := range d.violations(n) {
		issue, err := d.finish(model.NewIssue(model.CategoryNaming, v.rule).
			Severity(v.severity).
			Title(v.title).
			Description(v.detail).
			Suggestion(v.suggestion).
			At(file.Path, lineOrFirst(n.line), n.column), file, n.line, n.line)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// collectNames gathers declared names in tree order
func collectNames(root *ast.Node) []declaredName {
	var out []declaredName
	add := func(id *ast.Node, name string, role nameRole) {
		if name == "" {
			return
		}
		dn := declaredName{name: name, role: role, line: id.StartLine()}
		if id.Loc != nil {
			dn.column = id.Loc.Start.Column
		}
		out = append(out, dn)
	}

	ast.Walk(root, func(n, parent *ast.Node) bool {
		switch n.Type {
		case "FunctionDeclaration", "FunctionExpression":
			add(n.Child("id"), n.Name("id"), roleFunction)

		case "ClassDeclaration", "ClassExpression":
			add(n.Child("id"), n.Name("id"), roleClass)

		case "VariableDeclaration":
			isConst := n.String("kind") == "const"
			for _, decl := range n.Children("declarations") {
				id := decl.Child("id")
				if id == nil || id.Type != "Identifier" {
					continue
				}
				name := id.String("name")
				add(id, name, variableRole(name, isConst, decl.Child("init")))
			}

		case "MethodDefinition":
			if n.String("kind") == "constructor" || n.Bool("computed") {
				return true
			}
			add(n.Child("key"), identifierKey(n), roleMethod)

		case "Property", "PropertyDefinition":
			if n.Bool("computed") || n.Bool("shorthand") {
				return true
			}
			if parent != nil && parent.Type == "ObjectPattern" {
				return true
			}
			role := roleProperty
			if n.Bool("method") {
				role = roleMethod
			}
			add(n.Child("key"), identifierKey(n), role)
		}
		return true
	})
	return out
}

// identifierKey is the key name when the key is an identifier; quoted keys
// are left alone
func identifierKey(n *ast.Node) string {
	return n.Name("key")
}

func variableRole(name string, isConst bool, init *ast.Node) nameRole {
	if isConst && isAllUpper(name) {
		return roleConstant
	}
	if init != nil && init.Type == "ClassExpression" {
		return roleClass
	}
	return roleVariable
}

func isAllUpper(name string) bool {
	hasLetter := false
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
