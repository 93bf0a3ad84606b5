package game

const (
	ErrorInternalMissingCollider   = "Error: Collider required to simulate movement."
	ErrorInternalMultipleModes     = "Error: More than one custom movement mode active (%v)."
	ErrorInternalInvalidCapsule    = "Error: Capsule half height %v is outside the allowed set."
	ErrorInternalReplayOutOfOrder  = "Error: Saved move %d replayed after %d."
	ErrorInternalProxyCustomPhysic = "Error: Simulated proxy attempted to run custom movement physics."
	ErrorInternalStaleInputCache   = "Error: Input cache read for tick %d without being computed."

	ErrorMoveOutOfOrder    = "saved move %d recorded after %d"
	ErrorDecodeMessage     = "unable to decode %s: %v"
	ErrorUnknownMessageID  = "unknown message id %d"
	ErrorTruncatedSnapshot = "snapshot truncated: %v"
)
