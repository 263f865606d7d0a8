package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Construction Errors (E101-E199)
	// ============================================

	"E101": {
		Category:   CategoryConstruction,
		Message:    "Invalid node tag",
		Detail:     "A node tag must be a string element name, a component function or nil for a fragment.",
		Suggestion: "Pass a tag name such as \"div\", a vdom.ComponentFunc, or nil",
	},
	"E102": {
		Category: CategoryConstruction,
		Message:  "Invalid lifecycle hook",
		Detail:   "mount expects func(Props), unmount expects func(), update expects func(prev, next Props).",
	},
	"E103": {
		Category:   CategoryConstruction,
		Message:    "Unsupported child type",
		Detail:     "Children may be nodes, strings, numbers, booleans, nil, fmt.Stringer values or slices of those.",
		Suggestion: "Convert the value to a string or wrap it in vdom.Text",
	},
	"E104": {
		Category: CategoryConstruction,
		Message:  "Component rendered nil",
		Detail:   "A component function must return a node. Return vdom.Empty() to render nothing.",
	},

	// ============================================
	// Lifecycle Errors (E201-E299)
	// ============================================

	"E201": {
		Category:   CategoryLifecycle,
		Message:    "Component is not mounted",
		Detail:     "Update and SetProps need the instance to be mounted by an engine first.",
		Suggestion: "Call Engine.Render with the tree containing the component before updating it",
	},
	"E202": {
		Category: CategoryLifecycle,
		Message:  "Component was unmounted",
		Detail:   "The instance was removed from the tree by a previous patch pass.",
	},
	"E203": {
		Category:   CategoryLifecycle,
		Message:    "Too many deferred updates",
		Detail:     "Updates requested while a patch pass is running are queued; the queue is full.",
		Suggestion: "Avoid updating components from inside lifecycle hooks in a loop, or raise engine.maxDeferred",
	},
	"E204": {
		Category:   CategoryLifecycle,
		Message:    "Re-entrant engine call",
		Detail:     "Render, Mount, Patch and Unmount cannot be called while a pass is in flight.",
		Suggestion: "Use Instance.Update from hooks; it is queued until the current pass finishes",
	},

	// ============================================
	// Reconcile Errors (E301-E399)
	// ============================================

	"E301": {
		Category:   CategoryReconcile,
		Message:    "Unknown container",
		Detail:     "The node's host container is not known, so it cannot be replaced or removed.",
		Suggestion: "Patch and unmount roots mounted with Engine.Render or nodes inside them",
	},
	"E302": {
		Category: CategoryReconcile,
		Message:  "Malformed component node",
		Detail:   "A component node must have exactly one child: its rendered subtree.",
	},
	"E303": {
		Category: CategoryReconcile,
		Message:  "Foreign host node",
		Detail:   "The host adapter was handed a node it did not create.",
	},
	"E304": {
		Category: CategoryReconcile,
		Message:  "Host node is not a child of the given parent",
	},

	// ============================================
	// Config Errors (E401-E499)
	// ============================================

	"E401": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Suggestion: "Create vreconcile.json or pass --config",
	},
	"E402": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
	},
	"E403": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
	"E404": {
		Category:   CategoryConfig,
		Message:    "Config file already exists",
		Suggestion: "Pass --force to overwrite it",
	},

	// ============================================
	// Scenario Errors (E501-E599)
	// ============================================

	"E501": {
		Category: CategoryScenario,
		Message:  "Scenario has no steps",
	},
	"E502": {
		Category: CategoryScenario,
		Message:  "Invalid scenario node",
		Detail:   "A node needs exactly one of tag, text or fragment.",
	},
	"E503": {
		Category: CategoryScenario,
		Message:  "Scenario could not be loaded",
	},
	"E504": {
		Category: CategoryScenario,
		Message:  "Scenario not found",
	},
	"E505": {
		Category:   CategoryScenario,
		Message:    "Template not found",
		Suggestion: "Run 'vreconcile init --list' to see the available templates",
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
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
