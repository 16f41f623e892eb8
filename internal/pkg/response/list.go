package response

// List normalizes a slice for JSON list endpoints.
// An empty result serializes as [] instead of null.
func List[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
