package level

import "fmt"

// Kind classifies a level load failure.
type Kind int

const (
	// AssetMissing means a required file is not present in any asset root.
	AssetMissing Kind = iota + 1
	// AssetInvalid means a file was found but could not be decoded.
	AssetInvalid
	// TerrainBuild means the terrain mesh could not be generated.
	TerrainBuild
)

func (k Kind) String() string {
	switch k {
	case AssetMissing:
		return "asset missing"
	case AssetInvalid:
		return "asset invalid"
	case TerrainBuild:
		return "terrain build"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error reports which asset failed to load and why.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
