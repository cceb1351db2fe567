package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Validation Errors (V001-V099)
	// ============================================

	"V001": {
		Category:   CategoryValidation,
		Message:    "Element tag is not defined",
		Suggestion: "Pass vdom.ElementTag(\"div\") or vdom.ComponentTag(factory) to CreateElement.",
	},
	"V002": {
		Category:   CategoryValidation,
		Message:    "Display name was not specified",
		Suggestion: "Give every class a display name, e.g. CreateClass(\"CustomButton\", opts).",
	},
	"V003": {
		Category:   CategoryValidation,
		Message:    "Mount target is not defined",
		Suggestion: "Render needs the host node that will own the tree.",
	},
	"V004": {
		Category:   CategoryValidation,
		Message:    "Render started while another render is running",
		Suggestion: "Do not trigger a render synchronously from inside a render cycle.",
	},
	"V005": {
		Category: CategoryValidation,
		Message:  "Invalid child value",
	},
	"V006": {
		Category:   CategoryValidation,
		Message:    "Component has no render function",
		Suggestion: "Set ClassOptions.Render.",
	},

	// ============================================
	// Render Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRender,
		Message:  "Patch target not found in host document",
	},
	"R002": {
		Category: CategoryRender,
		Message:  "Host document rejected markup",
	},
	"R003": {
		Category: CategoryRender,
		Message:  "Event handler could not be attached",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config file could not be read",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// Snapshot Errors (S001-S099)
	// ============================================

	"S001": {
		Category: CategorySnapshot,
		Message:  "Snapshot could not be stored",
	},
	"S002": {
		Category: CategorySnapshot,
		Message:  "Unknown snapshot format",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
