package ai

// GeneratedArticle is the normalized result of one article generation call.
// Tags are always a canonical string slice here: providers that deliver tags
// as a pre-joined string must split them before returning, so nothing
// downstream branches on provider output shape.
type GeneratedArticle struct {
	Title   string
	Content string
	Tags    []string
}

// Degraded reports whether generation failed silently. The provider contract
// is to return the original title unchanged when it could not produce original
// content, so byte-for-byte title equality is the degradation signal.
func (g *GeneratedArticle) Degraded(originalTitle string) bool {
	return g.Title == originalTitle
}
