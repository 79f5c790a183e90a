package core

// BuildStatus specifies the status of a build
type BuildStatus string

// Build Status values.
const (
	BuildSuccess     BuildStatus = "success"
	BuildFailure     BuildStatus = "failure"
	BuildRunning     BuildStatus = "running"
	BuildInterrupted BuildStatus = "interrupted"
)

// Project represents the project owning a build configuration.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
}

// BuildType represents the build configuration a build was started from.
type BuildType struct {
	ID      string  `json:"id" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Project Project `json:"project"`
}

// Build represents a single build execution reported by the CI engine.
type Build struct {
	ID         string      `json:"id" binding:"required"`
	Number     string      `json:"number"`
	Status     BuildStatus `json:"status" binding:"required,oneof=success failure running interrupted"`
	StatusText string      `json:"status_text"`
	// Parameters holds the raw build parameters, values may reference other parameters.
	Parameters map[string]string `json:"parameters"`
	// BuildType is nil when the build configuration has been removed.
	BuildType *BuildType `json:"build_type"`
	WebURL    string     `json:"web_url"`
}

// BuildTypeID returns the id of the build configuration or an empty string if it was removed.
func (b *Build) BuildTypeID() string {
	if b.BuildType == nil {
		return ""
	}
	return b.BuildType.ID
}
