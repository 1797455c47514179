package assets

// Loader defines the contract for loading refspec styles.
// Implementations may load from embedded assets, the filesystem, or both.
type Loader interface {
	// LoadStyle loads a style's HTML markup by name (without the .html
	// extension). Returns ErrStyleNotFound if the style doesn't exist
	// and ErrInvalidStyleName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// ListStyles returns the available style names, sorted.
	ListStyles() ([]string, error)
}
