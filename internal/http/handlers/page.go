package handlers

import (
	"html/template"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"photosuite/internal/domain"
	"photosuite/internal/imagegen"
	"photosuite/internal/session"
)

// ToolTab is one entry of the tool switcher.
type ToolTab struct {
	ID     string
	Label  string
	Active bool
}

// StyleOption is one style button of the create tool.
type StyleOption struct {
	Key      string
	Label    string
	Selected bool
}

// Page is everything the template needs, derived from a session snapshot.
type Page struct {
	Lang        string
	OtherLang   string
	ShowWelcome bool
	HasImage    bool

	OriginalURL string
	ImageName   string

	Tools      []ToolTab
	ActiveTool string
	Styles     []StyleOption

	Prompt           string
	NegativePrompt   string
	BackgroundPrompt string

	Loading          bool
	GenerateLabel    string
	LoadingLabel     string
	GenerateDisabled bool

	ResultURL    template.URL
	DownloadName string
	Error        string
	Notice       string

	printer *message.Printer
}

// T translates a catalogue key.
func (p Page) T(key string) string {
	if p.printer == nil {
		return key
	}
	return p.printer.Sprintf(key)
}

var toolLabels = map[domain.Tool]string{
	domain.ToolCreate:     msgToolCreate,
	domain.ToolRestore:    msgToolRestore,
	domain.ToolBackground: msgToolBackground,
}

var actionLabels = map[domain.Tool][2]string{
	domain.ToolCreate:     {msgActionCreate, msgLoadingCreate},
	domain.ToolRestore:    {msgActionRestore, msgLoadingRestore},
	domain.ToolBackground: {msgActionBackground, msgLoadingBackground},
}

// BuildPage derives the rendered page from a session view. It has no side
// effects.
func BuildPage(v session.View, tag language.Tag) Page {
	p := NewPrinter(tag)
	lang := localeOf(tag)
	if lang != "en" {
		lang = "es"
	}
	other := "en"
	if lang == "en" {
		other = "es"
	}

	sel := v.Selection
	page := Page{
		Lang:             lang,
		OtherLang:        other,
		ShowWelcome:      v.ShowWelcome,
		HasImage:         v.HasImage,
		OriginalURL:      v.ImageURL,
		ImageName:        v.ImageName,
		ActiveTool:       string(sel.Active),
		Prompt:           sel.Create.Prompt,
		NegativePrompt:   sel.Create.NegativePrompt,
		BackgroundPrompt: sel.Background.Prompt,
		Loading:          v.InFlight,
		GenerateDisabled: v.InFlight || (sel.Active == domain.ToolBackground && strings.TrimSpace(sel.Background.Prompt) == ""),
		printer:          p,
	}

	for _, tool := range domain.Tools() {
		page.Tools = append(page.Tools, ToolTab{
			ID:     string(tool),
			Label:  p.Sprintf(toolLabels[tool]),
			Active: tool == sel.Active,
		})
	}

	selected := sel.Create.Style
	if !imagegen.KnownStyle(selected) {
		selected = domain.DefaultStyle
	}
	for _, key := range imagegen.Styles() {
		page.Styles = append(page.Styles, StyleOption{
			Key:      key,
			Label:    imagegen.StyleLabel(key, tag),
			Selected: key == selected,
		})
	}

	labels, ok := actionLabels[sel.Active]
	if !ok {
		labels = actionLabels[domain.ToolCreate]
	}
	page.GenerateLabel = p.Sprintf(labels[0])
	page.LoadingLabel = p.Sprintf(labels[1])
	if v.InFlight {
		page.GenerateLabel = page.LoadingLabel
	}

	if strings.HasPrefix(v.Result, "data:"+session.ResultMediaType+";base64,") {
		page.ResultURL = template.URL(v.Result)
		page.DownloadName = DownloadName(p.Sprintf(msgDownloadPrefix), v.ImageName)
	}
	if v.ErrorCode != "" {
		page.Error = ErrorText(p, v.ErrorCode, v.ErrorDetail)
	}
	return page
}

// DownloadName is the attachment name offered for a generated image.
func DownloadName(prefix, original string) string {
	original = strings.TrimSpace(original)
	if original == "" {
		original = "image.png"
	}
	return prefix + "-" + original
}

// ErrorText renders a session error code as a localized sentence, followed
// by the diagnostic detail when there is one.
func ErrorText(p *message.Printer, code, detail string) string {
	key, ok := errorMessageKey[code]
	if !ok {
		key = msgErrUnknown
	}
	text := p.Sprintf(msgErrorPrefix) + " " + p.Sprintf(key)
	if detail = strings.TrimSpace(detail); detail != "" {
		text += " (" + detail + ")"
	}
	return text
}
