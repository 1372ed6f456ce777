package generation

import (
	"fmt"
	"strings"

	"github.com/ziljnk/content-generation/internal/model"
)

// Placeholder is the sentinel comment the text model is instructed to embed.
// It is purely a splice point: the injection step replaces or removes it, and
// finalized content never contains it.
const Placeholder = "<!-- HERO_IMAGE_PLACEHOLDER -->"

// Prompts holds the instruction prompt for the text model and the independent
// prompt for the image model.
type Prompts struct {
	Text  string
	Image string
}

// BuildPrompts turns a content type, topic, config and optional brand profile
// into provider prompts. Pure, no I/O.
func BuildPrompts(contentType, topic string, cfg *model.EmailConfig, profile *model.BusinessProfile) Prompts {
	style := styleInstruction(profile)
	palette := paletteHint(profile)

	switch contentType {
	case model.TypeEmail:
		ec := cfg.WithDefaults()
		system := fmt.Sprintf(
			`You are an expert email copywriter. Write an email with a %s tone. The purpose is %s. The audience is %s. Return a complete HTML document (start with <!DOCTYPE html>) with internal CSS. The design should look like a professional HTML email or a clean letter.%s MUST include the comment "%s" at the top of the email body or container. Do not wrap the output in markdown code blocks, just return the raw HTML.`,
			ec.Tone, ec.Purpose, ec.Audience, style, Placeholder,
		)
		return Prompts{
			Text:  system + "\n\nTopic/Details: " + topic,
			Image: fmt.Sprintf("Create a professional, minimalist conceptual image or illustration that represents the theme of: %s. Suitable for a header or professional context.%s", topic, palette),
		}

	case model.TypeSocial:
		system := `You are an expert social media manager. Write a captivating, high-engagement social media post caption (Facebook/Instagram/LinkedIn). Use emojis, hashtags, and a call to action. Do strictly text, no HTML.`
		tone := "Professional yet engaging"
		if profile != nil && profile.Description != "" {
			tone = "Match brand voice"
		}
		return Prompts{
			Text:  fmt.Sprintf("%s\n\nTopic/Product: %s\n\nTone: %s.", system, topic, tone),
			Image: fmt.Sprintf("Create a stunning, high-engagement social media graphic for: %s. Dimensions should be square or 4:5. High contrast, scroll-stopping.%s", topic, palette),
		}

	default: // blog
		system := fmt.Sprintf(
			`You are an expert blog writer. Generate a complete, high-quality, SEO-optimized blog post based on the following topic. Return a full HTML document (start with <!DOCTYPE html>) with internal CSS suitable for a professional blog. The design should be modern, clean, and responsive.%s MUST include the comment "%s" inside the main content container at the very top, before the title. Do not wrap the output in markdown code blocks, just return the raw HTML.`,
			style, Placeholder,
		)
		return Prompts{
			Text:  system + "\n\nTopic: " + topic,
			Image: fmt.Sprintf("Create a professional, high-quality hero image for a blog post about: %s. The style should be modern, clean, and engaging.%s", topic, palette),
		}
	}
}

// BuildRegenerationPrompt builds the editor prompt used for feedback-driven
// rewrites of an existing document. Any embedded <img> tag must survive.
func BuildRegenerationPrompt(originalTopic, feedback, currentContent string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert content editor.\n")
	sb.WriteString("You are given an existing HTML document and a user's modification request.\n\n")
	sb.WriteString("Original Request/Topic: " + originalTopic + "\n")
	sb.WriteString("User Feedback for Modification: " + feedback + "\n\n")
	sb.WriteString("Current HTML Content:\n" + currentContent + "\n\n")
	sb.WriteString("Task: Regenerate the HTML content to address the user's feedback.\n")
	sb.WriteString("- Maintain the professional styling and internal CSS.\n")
	sb.WriteString("- Keep the document structure intact (<!DOCTYPE html> ...).\n")
	sb.WriteString("- If there is an existing <img> tag, PRESERVE IT exactly as is in the new output.\n")
	sb.WriteString("- Do not wrap the output in markdown code blocks, just return the raw HTML.\n")
	return sb.String()
}

// styleInstruction builds the branding block for HTML content types. Social
// captions have no markup to style and never receive it.
func styleInstruction(profile *model.BusinessProfile) string {
	if profile == nil {
		return ""
	}

	logoHTML := ""
	if profile.LogoURL != "" {
		logoHTML = fmt.Sprintf(
			"\n        Please include the following Logo in the HTML header or top section:\n        <img src=%q alt=\"%s Logo\" style=\"max-height: 50px; display: block; margin-bottom: 20px;\" />\n",
			profile.LogoURL, profile.Name,
		)
	}

	s := profile.Styles
	return fmt.Sprintf(`
IMPORTANT BRANDING INSTRUCTIONS:
You MUST apply the following brand styles to the HTML/CSS:
- Primary Color: %s (Use this for main headings, buttons, active states).
- Font Family: %s (Import from Google Fonts if needed or use fallback).
- Border Radius: %s.
- Spacing/Padding: %s.
- Brand Tone: Match the vibe of "%s" - %s.
%s
Ensure these CSS variables are set in the <style> tag:
:root {
    --primary: %s;
    --radius: %s;
    --font-main: %s;
}
`,
		s.PrimaryColor, s.Typography, s.BorderRadius, s.Padding,
		profile.Name, profile.Description, logoHTML,
		s.PrimaryColor, s.BorderRadius, s.Typography,
	)
}

func paletteHint(profile *model.BusinessProfile) string {
	if profile == nil || profile.Styles.PrimaryColor == "" {
		return ""
	}
	return fmt.Sprintf(" Integrate the brand color %s into the image palette.", profile.Styles.PrimaryColor)
}
