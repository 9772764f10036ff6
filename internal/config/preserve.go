package config

import (
	"path"
	"strings"
)

// DefaultSafeRemovalModules is the allow-list of libraries whose unused
// imports may be deleted without manual review: UI icon/component sets,
// animation libraries, and date/form/class utilities. Removing one of
// these can only drop a rendered element or helper, never a side effect.
var DefaultSafeRemovalModules = []string{
	"lucide-react",
	"@heroicons/react",
	"react-icons",
	"@radix-ui",
	"framer-motion",
	"date-fns",
	"react-hook-form",
	"clsx",
}

// DefaultEssentialPatterns are module paths whose imports are always
// treated as used: core framework entry points and test-framework roots.
// Structural rules (types paths, declaration files, bootstrap files) are
// built into EssentialMatch and need no pattern entry.
var DefaultEssentialPatterns = []string{
	"react",
	"react-dom",
	"next",
	"vitest",
	"jest",
	"@testing-library",
}

// ContextualPattern preserves a module's imports when a marker token
// appears anywhere in the file. This covers libraries whose imports are
// referenced through an object the textual scanner cannot tie back to the
// import name alone.
type ContextualPattern struct {
	// Module is the module path the pattern applies to.
	Module string `yaml:"module"`

	// Token is the marker string that must appear somewhere in the file.
	Token string `yaml:"token"`
}

// DefaultContextualPatterns cover common indirection idioms.
var DefaultContextualPatterns = []ContextualPattern{
	{Module: "styled-components", Token: "styled."},
	{Module: "framer-motion", Token: "motion."},
	{Module: "react-hot-toast", Token: "toast("},
}

// PreserveTable holds the essential and contextual preserve patterns.
// A preserve match forces a symbol's classification to Used before any
// usage scanning happens.
type PreserveTable struct {
	// Essential are module paths always preserved.
	Essential []string `yaml:"essential"`

	// Contextual are module paths preserved only when their marker token
	// appears in the file.
	Contextual []ContextualPattern `yaml:"contextual"`
}

// DefaultPreserveTable returns the built-in preserve patterns.
func DefaultPreserveTable() *PreserveTable {
	return &PreserveTable{
		Essential:  append([]string(nil), DefaultEssentialPatterns...),
		Contextual: append([]ContextualPattern(nil), DefaultContextualPatterns...),
	}
}

// EssentialMatch reports whether the module path matches an essential
// preserve rule. A match short-circuits usage scanning entirely.
//
// Beyond the configured pattern list, three structural rules always hold:
// type-only paths, declaration files, and test-setup/bootstrap files are
// essential regardless of configuration, because removing their imports
// breaks compilation or test setup in ways textual scanning cannot see.
func (t *PreserveTable) EssentialMatch(modulePath string) bool {
	if IsTypeOnlyPath(modulePath) || isBootstrapPath(modulePath) {
		return true
	}

	for _, pattern := range t.Essential {
		if MatchModule(pattern, modulePath) {
			return true
		}
	}
	return false
}

// ContextualMatch reports whether the module path matches a contextual
// preserve rule whose marker token appears in the file content.
func (t *PreserveTable) ContextualMatch(modulePath, fileContent string) bool {
	for _, cp := range t.Contextual {
		if MatchModule(cp.Module, modulePath) && strings.Contains(fileContent, cp.Token) {
			return true
		}
	}
	return false
}

// MatchModule reports whether a module path belongs to a pattern's module
// family. A pattern matches the exact path and any subpath below it, so
// "react" matches "react" and "react/jsx-runtime" but not "react-hook-form",
// and "@radix-ui" matches every package in the scope.
func MatchModule(pattern, modulePath string) bool {
	return modulePath == pattern || strings.HasPrefix(modulePath, pattern+"/")
}

// IsTypeOnlyPath reports whether the module path refers to a types-only
// location or a declaration file. Unused type imports frequently back
// annotations the textual scanner misses, so they are never SafeRemoval.
func IsTypeOnlyPath(modulePath string) bool {
	if strings.HasSuffix(modulePath, ".d.ts") || strings.HasSuffix(modulePath, ".d") {
		return true
	}
	if strings.HasPrefix(modulePath, "@types/") {
		return true
	}
	for _, seg := range strings.Split(modulePath, "/") {
		if seg == "types" {
			return true
		}
	}
	return false
}

// isBootstrapPath reports whether the module path refers to a test-setup
// or global-bootstrap file. These are imported for side effects and show
// no textual usage at all.
func isBootstrapPath(modulePath string) bool {
	base := path.Base(modulePath)
	base = strings.TrimSuffix(base, path.Ext(base))

	switch base {
	case "setupTests", "test-setup", "setup-tests", "globals", "global-setup", "polyfills":
		return true
	}
	return false
}
