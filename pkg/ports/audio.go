package ports

// AudioPort is the shared audio output for one phone. At most one prompt is
// audible at a time; the navigator always stops prior playback before
// starting new playback.
type AudioPort interface {
	// Play starts the named prompt asynchronously. It returns false when the
	// prompt cannot be resolved or playback fails; callers treat that as a
	// completed no-op and never as a navigation error.
	Play(promptID string) bool

	// Stop cuts the current playback immediately. Stopping idle audio is a
	// no-op.
	Stop()

	// IsPlaying reports whether a prompt is currently audible.
	IsPlaying() bool
}
