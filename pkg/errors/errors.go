package errors

var (
	// ErrTimeoutExceeded is returned when graceful timeout period exceeds.
	ErrTimeoutExceeded = New("Timeout exceeded")
	// ErrInvalidQueuePayload is returned when type assertion fails in queue producer.
	ErrInvalidQueuePayload = New("Invalid Queue Payload")
	// GenericErrorMessage is generic error message returned to UI
	GenericErrorMessage = New("Unexpected error. Please try again later.")
	// ErrUnknownPublisher is returned when a build feature names a publisher kind that is not registered.
	ErrUnknownPublisher = New("Unknown commit status publisher")
	// ErrMissingServerURL is returned when a publisher is configured without a server endpoint.
	ErrMissingServerURL = New("Missing server url in publisher settings")
	// ErrMissingFeatureID is returned when a build feature has no identifier.
	ErrMissingFeatureID = New("Missing feature id in publisher settings")
	// ErrDuplicateFeatureID is returned when two build features share an identifier.
	ErrDuplicateFeatureID = New("Duplicate feature id in publisher settings")
	// ErrUnknownEventKind is returned when a lifecycle event kind is not recognized.
	ErrUnknownEventKind = New("Unknown build lifecycle event")
	// ErrUnresolvedReference is returned when a parameter reference has no value.
	ErrUnresolvedReference = New("Unresolved parameter reference")
	// ErrReferenceCycle is returned when parameter references form a cycle.
	ErrReferenceCycle = New("Parameter reference cycle")
	// ErrInvalidRepoURL is returned when the repository slug cannot be derived from a VCS root url.
	ErrInvalidRepoURL = New("Unable to parse repository from VCS root url")
	// ErrMissingToken is returned when no token is configured for a publisher.
	ErrMissingToken = New("Missing token for commit status publisher")
	// ErrSecretNotFound is returned when no secret exists at a vault path.
	ErrSecretNotFound = New("Secret not found")
	// ErrTypeAssertionFailed is returned when a secret value has an unexpected type.
	ErrTypeAssertionFailed = New("Type assertion failed")
	// ErrInvalidDeliveryMode is returned when the delivery mode is neither queue nor direct.
	ErrInvalidDeliveryMode = New("Invalid status delivery mode")
	// ErrMissingStatusQueue is returned when queue delivery is configured without kafka brokers or topic.
	ErrMissingStatusQueue = New("Missing kafka brokers or topic for queue delivery")
)

// Error represents a json-encoded API error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// ErrSkipRetry is returned when retry attempt needs to be skipped
type ErrSkipRetry struct {
	Err error
}

// Error gives a human-readable description of the error.
func (e *ErrSkipRetry) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ErrSkipRetry) Unwrap() error {
	return e.Err
}
