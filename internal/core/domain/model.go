package domain

type Message struct {
	ID               int
	ChatID           int64
	Username         string
	ReplyToMessageID *int
	ReplyToUsername  string
	IsReplyToBot     bool
	ImageURL         string
	Text             string
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "upload_photo"
)

// UnsharpParams are the two knobs of the unsharp mask. Radius is the standard deviation of the Gaussian blur,
// Strength is the amplification of the high-frequency difference in percent.
type UnsharpParams struct {
	Radius   float64
	Strength float64
}

// UnsharpRequest is a single invocation of the unsharp mask node.
type UnsharpRequest struct {
	ImageID        string
	Params         UnsharpParams
	NodeID         string
	SessionID      string
	IsIntermediate bool
	Metadata       map[string]any
	Workflow       string
	// Name optionally pins the name the output is stored under.
	Name string
}

type ImageOrigin string

const (
	OriginInternal ImageOrigin = "internal"
	OriginExternal ImageOrigin = "external"
)

type ImageCategory string

const (
	CategoryGeneral ImageCategory = "general"
)

// ImageMetadata travels with a produced image into the output sink.
type ImageMetadata struct {
	Name           string         `json:"name,omitempty"`
	Origin         ImageOrigin    `json:"origin"`
	Category       ImageCategory  `json:"category"`
	NodeID         string         `json:"node_id,omitempty"`
	SessionID      string         `json:"session_id,omitempty"`
	IsIntermediate bool           `json:"is_intermediate"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Workflow       string         `json:"workflow,omitempty"`
}

// ImageHandle is returned by an output sink after an image was persisted.
type ImageHandle struct {
	Name   string
	Path   string
	Width  int
	Height int
}

// ImageOutput is what the node hands back to its caller.
type ImageOutput struct {
	ImageName string
	Width     int
	Height    int
}
