package ai

// Operation names, used for cache keys, usage accounting, and metrics labels.
const (
	OpSummarize     = "summarize"
	OpRewrite       = "rewrite"
	OpInterpret     = "interpret"
	OpExplainFolder = "explainFolder"
)

// Intent is the structured result of interpreting a natural-language query.
type Intent struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
}

// IntentUnknown is the intent name used when a query cannot be understood.
const IntentUnknown = "unknown"

// FolderData describes a folder for the explain operation: its path and the
// names of its immediate children.
type FolderData struct {
	Path    string   `json:"path"`
	Folders []string `json:"folders,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// FolderExplanation is the result of explaining a folder.
type FolderExplanation struct {
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	Path            string   `json:"path"`
}
