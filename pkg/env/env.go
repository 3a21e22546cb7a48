package env

import "os"

// Prefix namespaces the service's environment variables.
const Prefix = "CATALOG_"

// Get returns the value of the given environment variable, preferring the
// CATALOG_-prefixed form, or a fallback when neither is set.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
