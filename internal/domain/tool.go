package domain

import "strings"

// Tool identifies one of the transformation modes offered to the user.
type Tool string

const (
	ToolCreate     Tool = "create"
	ToolRestore    Tool = "restore"
	ToolBackground Tool = "background"
)

// DefaultStyle is the style key selected on a fresh session.
const DefaultStyle = "cinematic"

// Tools lists the supported tools in display order.
func Tools() []Tool {
	return []Tool{ToolCreate, ToolRestore, ToolBackground}
}

// Valid reports whether t is one of the supported tools.
func (t Tool) Valid() bool {
	switch t {
	case ToolCreate, ToolRestore, ToolBackground:
		return true
	default:
		return false
	}
}

// NormalizeTool lower-cases and trims free-form input. Unknown values are kept
// as-is so that the failure surfaces when a transformation is attempted.
func NormalizeTool(raw string) Tool {
	return Tool(strings.ToLower(strings.TrimSpace(raw)))
}

// CreateParams carries the inputs of the stylized generation tool.
type CreateParams struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Style          string `json:"style"`
}

// RestoreParams is empty; restoration takes no user input.
type RestoreParams struct{}

// BackgroundParams carries the description of the replacement background.
type BackgroundParams struct {
	Prompt string `json:"prompt"`
}

// ToolSelection holds the active tool together with every tool's own
// parameters. Switching Active never touches the parameter blocks.
type ToolSelection struct {
	Active     Tool             `json:"tool"`
	Create     CreateParams     `json:"create"`
	Restore    RestoreParams    `json:"restore"`
	Background BackgroundParams `json:"background"`
}

// NewToolSelection returns the selection used by a fresh session.
func NewToolSelection() ToolSelection {
	return ToolSelection{
		Active: ToolCreate,
		Create: CreateParams{Style: DefaultStyle},
	}
}

// Submittable reports whether the active tool has the inputs it needs.
// Only the background tool has a mandatory field.
func (s ToolSelection) Submittable() bool {
	if s.Active == ToolBackground {
		return strings.TrimSpace(s.Background.Prompt) != ""
	}
	return true
}
