package generation

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ziljnk/content-generation/internal/model"
)

var bodyTagRe = regexp.MustCompile(`<body[^>]*>`)

// InjectHeroImage splices the generated image into the document. This is a
// best-effort text transform over untrusted, semi-structured model output,
// not a real markup tree operation.
//
// Rules:
//   - social captions are never touched; the image URL lives in its own field
//   - a present placeholder is replaced with the image tag (empty tag when
//     there is no image, which simply deletes the marker)
//   - with an image but no placeholder, the tag is wrapped in a block and
//     inserted right after the opening <body> tag, or prepended when the
//     document has no body tag at all
//   - with neither image nor placeholder the content is returned unchanged
//
// Finalized content never contains the placeholder.
func InjectHeroImage(content, imageURL, contentType, topic string) string {
	if contentType == model.TypeSocial {
		return content
	}

	imgTag := heroImageTag(contentType, imageURL, topic)

	if strings.Contains(content, Placeholder) {
		content = strings.Replace(content, Placeholder, imgTag, 1)
		// The model sometimes repeats the marker; every copy must go.
		return strings.ReplaceAll(content, Placeholder, "")
	}

	if imageURL == "" {
		return content
	}

	if loc := bodyTagRe.FindStringIndex(content); loc != nil {
		block := `<div style="max-width: 800px; margin: 0 auto; padding: 20px;">` + imgTag + `</div>`
		return content[:loc[1]] + block + content[loc[1]:]
	}
	return imgTag + content
}

// heroImageTag builds the type-specific <img> markup: full width with a shadow
// for blog posts, centered and capped at 600px for emails.
func heroImageTag(contentType, imageURL, topic string) string {
	if imageURL == "" {
		return ""
	}
	alt := html.EscapeString(topic)
	if contentType == model.TypeEmail {
		return fmt.Sprintf(
			`<img src="%s" alt="%s" style="display: block; width: 100%%; max-width: 600px; height: auto; border-radius: 6px; margin: 0 auto 20px auto; border: 0;" />`,
			imageURL, alt,
		)
	}
	return fmt.Sprintf(
		`<img src="%s" alt="%s" style="width: 100%%; max-width: 100%%; height: auto; border-radius: 8px; margin-bottom: 24px; box-shadow: 0 4px 6px -1px rgba(0, 0, 0, 0.1);" />`,
		imageURL, alt,
	)
}
