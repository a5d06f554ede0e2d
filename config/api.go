package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Catalog reads are public; cart endpoints stay behind auth. The realtime
	// quote route carries its own session-signature check.
	return []string{"/api/products", "/api/products/:id", "/api/products/:id/quote", "/api/realtime/quote", "/graphql"}
}
