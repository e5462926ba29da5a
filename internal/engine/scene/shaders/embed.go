// Package shaders provides the embedded GLSL shader sources used when the
// asset roots do not override them.
package shaders

import (
	"embed"
	"fmt"
)

//go:embed *.vert *.frag
var files embed.FS

// Program names, matching the file stems.
const (
	Cube    = "cube"
	Terrain = "terrain"
	Vehicle = "vehicle"
	Skybox  = "skybox"
)

// Programs lists every program the scene builds.
var Programs = []string{Skybox, Vehicle, Terrain, Cube}

// Source returns the embedded source for a file such as "terrain.vert".
func Source(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("embedded shader %s: %w", name, err)
	}
	return string(data), nil
}
