package folders

// Granter gives an account full control over a directory, inherited by
// everything created below it, without removing existing entries.
type Granter interface {
	Grant(path, account string) error
}

// GranterFunc adapts a function to the Granter interface.
type GranterFunc func(path, account string) error

func (f GranterFunc) Grant(path, account string) error {
	return f(path, account)
}
