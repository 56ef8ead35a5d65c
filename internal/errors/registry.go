package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Routing Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryRouting,
		Message:  "No route matches path",
	},
	"E101": {
		Category: CategoryRouting,
		Message:  "Redirect limit exceeded",
		Detail:   "Route guards kept redirecting. This usually means two guards redirect to each other.",
	},
	"E102": {
		Category: CategoryRouting,
		Message:  "View swap failed",
	},

	// ============================================
	// Registry Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryRegistry,
		Message:  "Callback group does not exist",
	},

	// ============================================
	// Protocol Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
	},
	"E301": {
		Category: CategoryProtocol,
		Message:  "WebSocket write failed",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Session closed",
	},
	"E303": {
		Category: CategoryProtocol,
		Message:  "Client is sending too fast",
		Detail:   "Frames over the session's message rate are dropped.",
	},

	// ============================================
	// Config Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryConfig,
		Message:  "Config file not found",
	},
	"E401": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"E402": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
