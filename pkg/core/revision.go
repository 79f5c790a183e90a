package core

// VcsGit is the VCS kind commit statuses can be reported for.
const VcsGit = "git"

// VcsRoot identifies a version-control repository and its connection details.
type VcsRoot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	VcsName string `json:"vcs_name" binding:"required"`
	URL     string `json:"url"`
}

// Revision is a commit of a VCS root associated with one build execution.
type Revision struct {
	Root     *VcsRoot `json:"root" binding:"required"`
	Revision string   `json:"revision" binding:"required"`
}
