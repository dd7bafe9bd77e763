package domain

import (
	"net/netip"
	"strings"
	"time"
)

// SpaceMetadataKey selects the distance function when a collection is created.
const SpaceMetadataKey = "hnsw:space"

const (
	minNameLength = 3
	maxNameLength = 63
)

// Space names the distance function of a collection.
type Space string

const (
	SpaceL2     Space = "l2"
	SpaceCosine Space = "cosine"
	SpaceIP     Space = "ip"
)

// ParseSpace maps a metadata value to a Space. The empty string means l2.
func ParseSpace(v string) (Space, error) {
	switch Space(strings.ToLower(v)) {
	case "", SpaceL2:
		return SpaceL2, nil
	case SpaceCosine:
		return SpaceCosine, nil
	case SpaceIP:
		return SpaceIP, nil
	}
	return "", &SpaceError{Value: v}
}

// Collection describes a named set of records.
type Collection struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Dimension int            `json:"dimension,omitempty"`
	Space     Space          `json:"space,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Record is one embedding with its document and metadata.
type Record struct {
	ID        string         `json:"id"`
	Embedding []float32      `json:"embedding"`
	Document  string         `json:"document,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Match is a query hit.
type Match struct {
	Record
	Distance float32 `json:"distance"`
}

// ValidateName checks a collection name against the naming rules:
// 3-63 characters from [a-zA-Z0-9._-], alphanumeric first and last
// characters, no "..", and not an IPv4 address.
func ValidateName(name string) error {
	if n := len(name); n < minNameLength || n > maxNameLength {
		return &NameError{Name: name, Reason: "must be between 3 and 63 characters"}
	}
	for _, r := range name {
		if !isAlnum(r) && r != '.' && r != '_' && r != '-' {
			return &NameError{Name: name, Reason: "may only contain [a-zA-Z0-9._-]"}
		}
	}
	if !isAlnum(rune(name[0])) || !isAlnum(rune(name[len(name)-1])) {
		return &NameError{Name: name, Reason: "must start and end with an alphanumeric character"}
	}
	if strings.Contains(name, "..") {
		return &NameError{Name: name, Reason: "must not contain two consecutive periods"}
	}
	if addr, err := netip.ParseAddr(name); err == nil && addr.Is4() {
		return &NameError{Name: name, Reason: "must not be a valid IPv4 address"}
	}
	return nil
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
