package models

// AccountResult records what happened to one account during a folder run.
type AccountResult struct {
	Account string `json:"account"`
	Path    string `json:"path"`
	Existed bool   `json:"existed"`
	Created bool   `json:"created"`
	// WouldCreate is set instead of Created on a dry run.
	WouldCreate bool  `json:"would_create,omitempty"`
	Granted     bool  `json:"granted"`
	Err         error `json:"-"`
}
