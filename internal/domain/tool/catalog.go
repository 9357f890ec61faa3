package tool

// Catalog is the read-only set of tools the service offers.
type Catalog interface {
	// Get returns the tool with the given slug, or nil and false.
	Get(slug string) (*Tool, bool)
	// All returns every tool ordered by category, then name.
	All() []*Tool
}
