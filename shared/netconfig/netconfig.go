// Package netconfig defines lightweight values shared between client and
// server. It must have zero dependencies on ebiten or any graphics library so
// the dedicated server binary stays headless.
package netconfig

// ProtocolVersion must match between client and server. The server rejects
// joins that carry a different, non-empty version.
const ProtocolVersion = "arena-1"

// DefaultAddress is where the local client looks for a server.
const DefaultAddress = "localhost:7373"

// MaxPlayers caps the characters a server admits.
const MaxPlayers = 8
