package imagegen

import (
	"fmt"
	"strings"

	"photosuite/internal/domain"
)

const (
	// DefaultCreatePrompt replaces a blank create prompt.
	DefaultCreatePrompt = "Improve the overall quality of the image while keeping a natural look."
	// DefaultNegativePrompt replaces a blank negative prompt.
	DefaultNegativePrompt = "No specific elements to avoid. Focus on quality."
)

const createTemplate = `Act as an expert in photo editing and image generation. Transform the provided image following these instructions precisely.

**Main user instruction:** "%s"

**Artistic style to apply:** "%s"

**Elements to avoid (negative prompt):** "%s"

Your task is to merge these instructions into a visually striking image. Do not crop, rotate or alter the fundamental composition of the original image unless explicitly asked to. Return only the transformed image at the highest possible quality.`

const restoreTemplate = `Act as a world-class photo restoration expert. Your only task is to restore the provided image to its best possible condition.
- **Sharpen:** increase clarity and detail without introducing artifacts.
- **Correct color:** bring faded colors back to their original, vibrant tone.
- **Repair damage:** seamlessly remove scratches, dust, stains and creases.
- **Enhance faces:** gently rebuild facial details that may be blurry or unclear.
- **Reduce noise:** clean up image grain while preserving fine detail.
Do NOT alter the content, the composition or the subject of the photo. The goal is pure restoration, not creative modification. Return the restored image at the highest quality.`

const backgroundTemplate = `Act as an expert in image compositing and visual effects. Your task is to replace the background of the provided image in an ultra-realistic way.
1. **Identify the main subject:** precisely detect the foreground subject or subjects.
2. **Remove the original background:** cut out the subject perfectly, paying special attention to fine details such as hair or complex edges.
3. **Create a new background:** generate a new background based on the following user description: "%s". The background must be photorealistic and consistent in lighting, perspective and shadows with the main subject.
4. **Integrate the subject:** blend the main subject into the new background seamlessly. Make sure the subject's lighting matches the new environment and add realistic shadows where needed.
The final result must look like a real photograph, not a composite. Return only the final image.`

// BuildInstruction renders the instruction text sent to the image model for
// the active tool. Output depends only on sel.
func BuildInstruction(sel domain.ToolSelection) (string, error) {
	switch sel.Active {
	case domain.ToolCreate:
		return BuildCreateInstruction(sel.Create), nil
	case domain.ToolRestore:
		return restoreTemplate, nil
	case domain.ToolBackground:
		return BuildBackgroundInstruction(sel.Background.Prompt)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownTool, string(sel.Active))
	}
}

// BuildCreateInstruction renders the stylized generation template.
func BuildCreateInstruction(p domain.CreateParams) string {
	prompt := p.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultCreatePrompt
	}
	negative := p.NegativePrompt
	if strings.TrimSpace(negative) == "" {
		negative = DefaultNegativePrompt
	}
	return fmt.Sprintf(createTemplate, prompt, StylePhrase(p.Style), negative)
}

// BuildBackgroundInstruction renders the background replacement template.
// A blank description is a validation error.
func BuildBackgroundInstruction(description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("%w: background description must not be empty", domain.ErrValidation)
	}
	return fmt.Sprintf(backgroundTemplate, description), nil
}
