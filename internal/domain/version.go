package domain

import (
	"fmt"
	"strings"
)

// GameVersion selects which flavour of the upstream catalog is read
type GameVersion string

const (
	GameVersionRetail  GameVersion = "RETAIL"
	GameVersionClassic GameVersion = "CLASSIC"
)

// GameVersions lists the supported versions in load order
var GameVersions = []GameVersion{GameVersionRetail, GameVersionClassic}

// Valid reports whether v is a known version
func (v GameVersion) Valid() bool {
	return v == GameVersionRetail || v == GameVersionClassic
}

// ParseGameVersion accepts RETAIL/CLASSIC in any case
func ParseGameVersion(s string) (GameVersion, error) {
	v := GameVersion(strings.ToUpper(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: game version %q", ErrUnsupportedNamespace, s)
	}
	return v, nil
}

// NamespaceType is the upstream namespace family: static game data or dynamic realm data
type NamespaceType string

const (
	NamespaceStatic  NamespaceType = "static"
	NamespaceDynamic NamespaceType = "dynamic"
)

// Valid reports whether n is a known namespace type
func (n NamespaceType) Valid() bool {
	return n == NamespaceStatic || n == NamespaceDynamic
}
