package store

// SetTestURLs overrides the service URLs on a client for testing.
// This should only be used in tests.
func SetTestURLs(c *Client, restURL, storageURL string) {
	if restURL != "" {
		c.restURL = restURL
	}
	if storageURL != "" {
		c.storageURL = storageURL
	}
}
