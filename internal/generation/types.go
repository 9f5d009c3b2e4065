package generation

// Platform identifies a social network a draft is written for
type Platform string

const (
	PlatformFacebook  Platform = "Facebook"
	PlatformX         Platform = "X"
	PlatformInstagram Platform = "Instagram"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// AllPlatforms lists every supported platform in display order
var AllPlatforms = []Platform{PlatformFacebook, PlatformX, PlatformInstagram, PlatformLinkedIn}

// IsValid reports whether p is one of the supported platforms
func (p Platform) IsValid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// GenerationRequest asks for one draft per platform about the given topics
type GenerationRequest struct {
	Topics    []string   `json:"topics" validate:"required,min=1"`
	Platforms []Platform `json:"platforms" validate:"dive,oneof=Facebook X Instagram LinkedIn"`
}

// GeneratedPost is a single platform-tagged draft produced by the model
type GeneratedPost struct {
	Platform Platform `json:"platform" validate:"required,oneof=Facebook X Instagram LinkedIn"`
	Content  string   `json:"content" validate:"required"`
}

// GenerationResult is the validated output of the initial generation flow
type GenerationResult struct {
	Posts []GeneratedPost `json:"posts" validate:"required,dive"`
}

// RegenerationRequest asks the model to rewrite one draft following the user's edits.
// Platform is free text here, unlike GenerationRequest.
type RegenerationRequest struct {
	OriginalPost string `json:"originalPost"`
	UserEdits    string `json:"userEdits"`
	Topic        string `json:"topic"`
	Platform     string `json:"platform"`
	ImageURI     string `json:"imageUri,omitempty" validate:"omitempty,datauri"`
}

// RegenerationResult carries the rewritten draft exactly as the model produced it
type RegenerationResult struct {
	RegeneratedPost string `json:"regeneratedPost"`
}
