package interfaces

// Logger is the structured logging contract used by every core package.
// The production implementation is backed by logrus; tests pass a mock or
// a logger writing to io.Discard.
//
// Example usage:
//
//	logger.Warn("Accessibility check failed", map[string]interface{}{
//		"url":   "https://example.com/a.mp4",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs per-element detail such as skipped images.
	Debug(msg string, fields map[string]interface{})

	// Info logs one line per completed operation.
	Info(msg string, fields map[string]interface{})

	// Warn logs recoverable failures that degrade to an empty result.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures a human should look at.
	Error(msg string, fields map[string]interface{})
}
