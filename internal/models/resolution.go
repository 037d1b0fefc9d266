package models

import "strings"

// Resolution is the video quality advertised on a download link label
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	Resolution480p
	Resolution720p
	Resolution1080p
	Resolution2160p // 4K
	Resolution3D
)

// String returns the token used in link labels
func (r Resolution) String() string {
	switch r {
	case Resolution480p:
		return "480p"
	case Resolution720p:
		return "720p"
	case Resolution1080p:
		return "1080p"
	case Resolution2160p:
		return "2160p"
	case Resolution3D:
		return "3d"
	default:
		return "unknown"
	}
}

// ParseResolution converts a resolution token to Resolution
func ParseResolution(s string) Resolution {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "480p":
		return Resolution480p
	case "720p":
		return Resolution720p
	case "1080p":
		return Resolution1080p
	case "2160p", "4k":
		return Resolution2160p
	case "3d":
		return Resolution3D
	default:
		return ResolutionUnknown
	}
}

// MatchesLabel reports whether the visible text of a link mentions this resolution.
// The match is a case-insensitive substring match, so "Foo.1080p.BluRay" matches 1080p.
func (r Resolution) MatchesLabel(label string) bool {
	if r == ResolutionUnknown {
		return false
	}
	return strings.Contains(strings.ToLower(label), r.String())
}
