package errors

type template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]template{
	// Runtime (R1xx)
	"R101": {
		Category: CategoryRuntime,
		Message:  "No region registry in scope",
		Detail:   "Region content was published from a scope that has no layout with a mounted registry above it.",
	},
	"R102": {
		Category: CategoryRuntime,
		Message:  "Region fragment panicked",
	},

	// Validation (R2xx)
	"R201": {
		Category: CategoryValidation,
		Message:  "Region data failed validation",
	},
	"R202": {
		Category: CategoryValidation,
		Message:  "Region data is not JSON-shaped",
	},

	// CLI and config (R3xx)
	"R301": {
		Category: CategoryCLI,
		Message:  "Invalid region name",
		Detail:   "Region names must start with a letter and contain only letters, digits and dashes.",
	},
	"R302": {
		Category: CategoryCLI,
		Message:  "Unknown strategy",
	},
	"R303": {
		Category: CategoryCLI,
		Message:  "Unknown validator",
	},
	"R304": {
		Category: CategoryCLI,
		Message:  "Invalid field definition",
	},
	"R305": {
		Category: CategoryCLI,
		Message:  "Failed to write generated file",
	},
	"R306": {
		Category: CategoryCLI,
		Message:  "Template error",
	},
	"R307": {
		Category: CategoryCLI,
		Message:  "Prompt aborted",
	},
	"R320": {
		Category: CategoryConfig,
		Message:  "Invalid regions.json",
	},
	"R321": {
		Category: CategoryConfig,
		Message:  "Invalid fields file",
	},
}

// Codes returns every registered code.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
