package generation

import "context"

// Task names the flow a model request belongs to
type Task string

const (
	TaskGeneratePosts  Task = "generate_posts"
	TaskRegeneratePost Task = "regenerate_post"
)

// Model is the capability the flows use to call a generative language model.
// Generate returns the raw text output, which the flows parse and validate.
type Model interface {
	Generate(ctx context.Context, req ModelRequest) (string, error)
}

// ModelRequest is a single rendered prompt plus the shape the answer must take
type ModelRequest struct {
	Task   Task
	Prompt string
	Schema *Schema
	Image  *InlineImage
	// Input is the validated request the prompt was rendered from.
	// Providers send only Prompt; local fakes may read it.
	Input any
}

// InlineImage is a decoded data URI attached to a prompt
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// SchemaType is the JSON type of a schema node
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema is a provider-neutral description of the JSON a model must answer with
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// PostsSchema describes the output of the initial generation flow
func PostsSchema() *Schema {
	platforms := make([]string, len(AllPlatforms))
	for i, p := range AllPlatforms {
		platforms[i] = string(p)
	}
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"posts": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"platform": {Type: TypeString, Enum: platforms},
						"content":  {Type: TypeString, Description: "The post text"},
					},
					Required: []string{"platform", "content"},
				},
			},
		},
		Required: []string{"posts"},
	}
}

// RegeneratedPostSchema describes the output of the regeneration flow
func RegeneratedPostSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"regeneratedPost": {Type: TypeString, Description: "The revised post text"},
		},
		Required: []string{"regeneratedPost"},
	}
}
