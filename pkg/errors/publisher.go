package errors

import "fmt"

// PublicationError is returned by a commit status publisher when the
// downstream report action fails. The CI engine surfaces it as a problem
// of the build feature the publisher belongs to.
type PublicationError struct {
	PublisherID string
	BuildID     string
	Revision    string
	Err         error
}

// NewPublicationError wraps err as a failure of publisherID for the given build and revision.
func NewPublicationError(publisherID, buildID, revision string, err error) *PublicationError {
	return &PublicationError{PublisherID: publisherID, BuildID: buildID, Revision: revision, Err: err}
}

func (e *PublicationError) Error() string {
	return fmt.Sprintf("%s: failed to publish status for build %s, revision %s: %v",
		e.PublisherID, e.BuildID, e.Revision, e.Err)
}

// Unwrap returns the cause of the publication failure.
func (e *PublicationError) Unwrap() error {
	return e.Err
}
