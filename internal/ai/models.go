package ai

// LocationQuery is the input to a location based suggestion.
type LocationQuery struct {
	// Location is the user's free text, already trimmed.
	Location string

	// Address is the geocoded canonical address, when one could be resolved.
	// It only adds context to the prompt.
	Address string

	Preferences []string
}

// ImageQuery is the input to an image based suggestion.
type ImageQuery struct {
	Data []byte

	// Format is the image subtype expected by genai.ImageData (e.g. "jpeg", "png").
	Format string

	Preferences []string
}
