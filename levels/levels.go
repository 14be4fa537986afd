// Package levels embeds the bundled arena maps.
package levels

import "embed"

//go:embed *.tmx
var FS embed.FS

// Default is the map loaded when no -level flag is given.
const Default = "arena.tmx"
