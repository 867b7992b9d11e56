package handlers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"photosuite/internal/session"
)

// Message keys used by the page and the error envelope.
const (
	msgTitle             = "app.title"
	msgTagline           = "app.tagline"
	msgFooter            = "app.footer"
	msgUploadTitle       = "upload.title"
	msgUploadPrompt      = "upload.prompt"
	msgUploadHint        = "upload.hint"
	msgUploadButton      = "upload.button"
	msgToolbox           = "toolbox.title"
	msgToolCreate        = "tool.create"
	msgToolRestore       = "tool.restore"
	msgToolBackground    = "tool.background"
	msgActionCreate      = "action.create"
	msgActionRestore     = "action.restore"
	msgActionBackground  = "action.background"
	msgLoadingCreate     = "loading.create"
	msgLoadingRestore    = "loading.restore"
	msgLoadingBackground = "loading.background"
	msgLoadingMessage    = "loading.message"
	msgFieldPrompt       = "field.prompt"
	msgFieldPromptHint   = "field.prompt.placeholder"
	msgFieldNegative     = "field.negative"
	msgFieldNegativeHint = "field.negative.placeholder"
	msgFieldStyles       = "field.styles"
	msgFieldBackground   = "field.background"
	msgFieldBgHint       = "field.background.placeholder"
	msgFieldBgNote       = "field.background.note"
	msgRestoreTitle      = "restore.title"
	msgRestoreBody       = "restore.body"
	msgInspire           = "action.inspire"
	msgSave              = "action.save"
	msgReset             = "action.reset"
	msgDownload          = "action.download"
	msgBundle            = "action.bundle"
	msgOriginal          = "panel.original"
	msgGenerated         = "panel.generated"
	msgResultPlaceholder = "panel.placeholder"
	msgWelcomeTitle      = "welcome.title"
	msgWelcomeIntro      = "welcome.intro"
	msgWelcomeCreate     = "welcome.create"
	msgWelcomeRestore    = "welcome.restore"
	msgWelcomeBgTitle    = "welcome.background.title"
	msgWelcomeBackground = "welcome.background"
	msgWelcomeDismiss    = "welcome.dismiss"
	msgErrorPrefix       = "error.prefix"
	msgDownloadPrefix    = "download.prefix"
	msgUploadUnsupported = "upload.error.unsupported"
	msgUploadTooLarge    = "upload.error.too_large"
	msgUploadMissing     = "upload.error.missing"
	msgErrProcessing     = "error.processing_failed"
	msgErrValidation     = "error.validation"
	msgErrEncoding       = "error.encoding"
	msgErrUnknownTool    = "error.unknown_tool"
	msgErrUnknown        = "error.unknown"
)

// errorMessageKey maps session error codes to catalogue keys.
var errorMessageKey = map[string]string{
	session.ErrorCodeProcessing:  msgErrProcessing,
	session.ErrorCodeValidation:  msgErrValidation,
	session.ErrorCodeEncoding:    msgErrEncoding,
	session.ErrorCodeUnknownTool: msgErrUnknownTool,
	session.ErrorCodeUnknown:     msgErrUnknown,
}

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		msgTitle:             "Hidalgo Photo AI Suite",
		msgTagline:           "Transforma tu Foto con IA",
		msgFooter:            "Hidalgo Photo AI Suite - Desarrollado con Gemini",
		msgUploadTitle:       "Transforma tu Foto con IA",
		msgUploadPrompt:      "Sube una imagen y descríbela con un estilo único. Arrastra y suelta una imagen o haz clic para seleccionar un archivo.",
		msgUploadHint:        "PNG, JPG, o WEBP",
		msgUploadButton:      "Haz clic para subir o arrastra y suelta",
		msgToolbox:           "Caja de Herramientas",
		msgToolCreate:        "Crear",
		msgToolRestore:       "Restaurar",
		msgToolBackground:    "Fondo",
		msgActionCreate:      "Generar",
		msgActionRestore:     "Restaurar",
		msgActionBackground:  "Cambiar Fondo",
		msgLoadingCreate:     "Creando...",
		msgLoadingRestore:    "Restaurando...",
		msgLoadingBackground: "Editando...",
		msgLoadingMessage:    "La IA está creando tu imagen...",
		msgFieldPrompt:       "Instrucciones (Prompt)",
		msgFieldPromptHint:   "Ej: Un dragón majestuoso...",
		msgFieldNegative:     "Prompt Negativo (¿Qué evitar?)",
		msgFieldNegativeHint: "Ej: mala calidad, borroso...",
		msgFieldStyles:       "Estilos",
		msgFieldBackground:   "Describe el Nuevo Fondo",
		msgFieldBgHint:       "Ej: un bosque encantado al atardecer, una ciudad futurista de noche, una playa tropical...",
		msgFieldBgNote:       "La IA identificará al sujeto principal y lo colocará en el nuevo entorno que describas.",
		msgRestoreTitle:      "Restauración Automática",
		msgRestoreBody:       "Esta herramienta reparará automáticamente daños, mejorará la nitidez y corregirá los colores de tu foto. ¡Solo haz clic en Restaurar!",
		msgInspire:           "Inspírame",
		msgSave:              "Guardar",
		msgReset:             "Empezar de Nuevo",
		msgDownload:          "Descargar Imagen",
		msgBundle:            "Descargar Original y Resultado (.zip)",
		msgOriginal:          "Original",
		msgGenerated:         "Generada",
		msgResultPlaceholder: "Tu imagen transformada aparecerá aquí.",
		msgWelcomeTitle:      "¡Bienvenido a Hidalgo Photo AI Suite!",
		msgWelcomeIntro:      "Tu estudio fotográfico de IA todo en uno. Aquí tienes una guía rápida:",
		msgWelcomeCreate:     "Transforma tu foto con estilos artísticos. Describe tu visión y deja que la IA la haga realidad.",
		msgWelcomeRestore:    "Repara fotos antiguas o dañadas. Mejora la nitidez, corrige colores y elimina imperfecciones con un solo clic.",
		msgWelcomeBgTitle:    "Editar Fondo",
		msgWelcomeBackground: "Cambia el escenario. Describe un nuevo fondo y la IA colocará al sujeto de tu foto en él de forma realista.",
		msgWelcomeDismiss:    "¡Entendido, a crear!",
		msgErrorPrefix:       "No se pudo procesar la imagen.",
		msgDownloadPrefix:    "generada",
		msgUploadUnsupported: "Formato no compatible. Usa PNG, JPG o WEBP.",
		msgUploadTooLarge:    "El archivo es demasiado grande.",
		msgUploadMissing:     "Selecciona una imagen para subir.",
		msgErrProcessing:     "El modelo de IA no pudo procesar la imagen.",
		msgErrValidation:     "La descripción del nuevo fondo no puede estar vacía.",
		msgErrEncoding:       "No se pudo leer el archivo subido.",
		msgErrUnknownTool:    "Herramienta no válida seleccionada",
		msgErrUnknown:        "Un error desconocido ocurrió.",
	},
	language.English: {
		msgTitle:             "Hidalgo Photo AI Suite",
		msgTagline:           "Transform your Photo with AI",
		msgFooter:            "Hidalgo Photo AI Suite - Powered by Gemini",
		msgUploadTitle:       "Transform your Photo with AI",
		msgUploadPrompt:      "Upload an image and describe it with a unique style. Drag and drop an image or click to select a file.",
		msgUploadHint:        "PNG, JPG, or WEBP",
		msgUploadButton:      "Click to upload or drag and drop",
		msgToolbox:           "Toolbox",
		msgToolCreate:        "Create",
		msgToolRestore:       "Restore",
		msgToolBackground:    "Background",
		msgActionCreate:      "Generate",
		msgActionRestore:     "Restore",
		msgActionBackground:  "Change Background",
		msgLoadingCreate:     "Creating...",
		msgLoadingRestore:    "Restoring...",
		msgLoadingBackground: "Editing...",
		msgLoadingMessage:    "The AI is creating your image...",
		msgFieldPrompt:       "Instructions (Prompt)",
		msgFieldPromptHint:   "E.g. A majestic dragon...",
		msgFieldNegative:     "Negative Prompt (What to avoid?)",
		msgFieldNegativeHint: "E.g. low quality, blurry...",
		msgFieldStyles:       "Styles",
		msgFieldBackground:   "Describe the New Background",
		msgFieldBgHint:       "E.g. an enchanted forest at sunset, a futuristic city at night, a tropical beach...",
		msgFieldBgNote:       "The AI will identify the main subject and place it in the new setting you describe.",
		msgRestoreTitle:      "Automatic Restoration",
		msgRestoreBody:       "This tool automatically repairs damage, sharpens and corrects the colors of your photo. Just click Restore!",
		msgInspire:           "Inspire me",
		msgSave:              "Save",
		msgReset:             "Start Over",
		msgDownload:          "Download Image",
		msgBundle:            "Download Original and Result (.zip)",
		msgOriginal:          "Original",
		msgGenerated:         "Generated",
		msgResultPlaceholder: "Your transformed image will appear here.",
		msgWelcomeTitle:      "Welcome to Hidalgo Photo AI Suite!",
		msgWelcomeIntro:      "Your all-in-one AI photo studio. Here is a quick guide:",
		msgWelcomeCreate:     "Transform your photo with artistic styles. Describe your vision and let the AI make it real.",
		msgWelcomeRestore:    "Repair old or damaged photos. Sharpen, correct colors and remove imperfections with a single click.",
		msgWelcomeBgTitle:    "Edit Background",
		msgWelcomeBackground: "Change the scene. Describe a new background and the AI will realistically place the subject of your photo in it.",
		msgWelcomeDismiss:    "Got it, let's create!",
		msgErrorPrefix:       "Could not process the image.",
		msgDownloadPrefix:    "generated",
		msgUploadUnsupported: "Unsupported format. Use PNG, JPG or WEBP.",
		msgUploadTooLarge:    "The file is too large.",
		msgUploadMissing:     "Choose an image to upload.",
		msgErrProcessing:     "The AI model could not process the image.",
		msgErrValidation:     "The new background description must not be empty.",
		msgErrEncoding:       "The uploaded file could not be read.",
		msgErrUnknownTool:    "Invalid tool selected.",
		msgErrUnknown:        "An unknown error occurred.",
	},
}

var uiCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("handlers: invalid message " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// NewPrinter returns a printer for the UI catalogue in the given locale.
// Unsupported locales fall back to Spanish.
func NewPrinter(tag language.Tag) *message.Printer {
	_, idx, conf := catalogMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return message.NewPrinter(catalogTags[idx], message.Catalog(uiCatalog))
}

var (
	catalogTags    = []language.Tag{language.Spanish, language.English}
	catalogMatcher = language.NewMatcher(catalogTags)
)

// localeOf returns the two-letter base of the printer's language.
func localeOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
