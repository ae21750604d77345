package provider

// Model is a transcription model offered by a provider.
type Model struct {
	ID          string
	Name        string
	Description string
}
