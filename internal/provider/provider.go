package provider

import (
	"sort"

	"github.com/samber/lo"
)

// Provider describes a cloud speech-to-text service.
type Provider interface {
	Name() string
	DisplayName() string
	EnvVar() string
	APIKeyURL() string
	ValidateAPIKey(key string) bool
	Models() []Model
	DefaultModel() string
}

var registry = map[string]Provider{}

func init() {
	Register(&OpenAIProvider{})
	Register(&GroqProvider{})
}

// Register adds a provider to the registry
func Register(p Provider) {
	registry[p.Name()] = p
}

// GetProvider returns a provider by name, or nil if not found
func GetProvider(name string) Provider {
	return registry[name]
}

// ListProviders returns all registered provider names, sorted.
func ListProviders() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// EnvVarForProvider returns the environment variable holding the API key.
func EnvVarForProvider(name string) string {
	if p := GetProvider(name); p != nil {
		return p.EnvVar()
	}
	return ""
}

// ModelIDs returns the model identifiers of p in declaration order.
func ModelIDs(p Provider) []string {
	return lo.Map(p.Models(), func(m Model, _ int) string { return m.ID })
}

// HasModel reports whether p offers the given model.
func HasModel(p Provider, id string) bool {
	return lo.ContainsBy(p.Models(), func(m Model) bool { return m.ID == id })
}
