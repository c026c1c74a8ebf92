package interfaces

// Dependencies holds the external collaborators of the core services.
// It is built once in main and passed by value to each constructor.
type Dependencies struct {
	// Cache backs the access layer's response cache
	Cache Cache

	// HTTPClient is the retrying transport
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
