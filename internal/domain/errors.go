package domain

import "fmt"

// UnknownProductError indicates a caller or configuration bug: a poll was
// requested for a product the dispatcher does not know. It fails the request
// hard and never results in a network call.
type UnknownProductError struct {
	Product string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q", e.Product)
}

// HTTPError is a non-2xx response from an upstream endpoint.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// RadarMetadataError indicates the radar provider's frame index was missing
// or malformed. Radar failures are reported independently and never affect
// leaderboard state.
type RadarMetadataError struct {
	Reason string
}

func (e *RadarMetadataError) Error() string {
	return "radar metadata: " + e.Reason
}
