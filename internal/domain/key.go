package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Entity kinds that can appear in a Key path.
const (
	KindProfile    = "Profile"
	KindConference = "Conference"
	KindSession    = "Session"
	KindSpeaker    = "Speaker"
)

// allowedParent lists, per kind, the kind its parent must have ("" means root entity).
var allowedParent = map[string]string{
	KindProfile:    "",
	KindConference: KindProfile,
	KindSession:    KindConference,
	KindSpeaker:    "",
}

// Key identifies an entity by its ancestor path, e.g. Profile/u1/Conference/c1/Session/s1.
type Key struct {
	Kind   string
	ID     string
	Parent *Key
}

// NewKey returns a key of the given kind and id under parent (nil for root entities).
func NewKey(kind, id string, parent *Key) *Key {
	return &Key{Kind: kind, ID: id, Parent: parent}
}

// ProfileKey returns the key of the profile owned by userID.
func ProfileKey(userID string) *Key {
	return NewKey(KindProfile, userID, nil)
}

// Path returns the unencoded ancestor path with each component path-escaped.
func (k *Key) Path() string {
	if k == nil {
		return ""
	}
	own := url.PathEscape(k.Kind) + "/" + url.PathEscape(k.ID)
	if k.Parent == nil {
		return own
	}
	return k.Parent.Path() + "/" + own
}

// Encode returns the URL-safe reference handed out to clients.
func (k *Key) Encode() string {
	if k == nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(k.Path()))
}

// String implements fmt.Stringer.
func (k *Key) String() string { return k.Path() }

// Root returns the top-most ancestor of k.
func (k *Key) Root() *Key {
	for k != nil && k.Parent != nil {
		k = k.Parent
	}
	return k
}

// Equal reports whether both keys denote the same entity.
func (k *Key) Equal(o *Key) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.Path() == o.Path()
}

// ParseKeyPath parses an unencoded path as produced by Path.
func ParseKeyPath(path string) (*Key, error) {
	parts := strings.Split(path, "/")
	if path == "" || len(parts)%2 != 0 {
		return nil, fmt.Errorf("%w: malformed key path", ErrNotFound)
	}
	var key *Key
	for i := 0; i < len(parts); i += 2 {
		kind, err := url.PathUnescape(parts[i])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed key kind", ErrNotFound)
		}
		id, err := url.PathUnescape(parts[i+1])
		if err != nil || id == "" {
			return nil, fmt.Errorf("%w: malformed key id", ErrNotFound)
		}
		parentKind, ok := allowedParent[kind]
		if !ok {
			return nil, fmt.Errorf("%w: unknown key kind %q", ErrNotFound, kind)
		}
		gotParent := ""
		if key != nil {
			gotParent = key.Kind
		}
		if parentKind != gotParent {
			return nil, fmt.Errorf("%w: %s cannot be a child of %q", ErrNotFound, kind, gotParent)
		}
		key = NewKey(kind, id, key)
	}
	return key, nil
}

// DecodeKey parses a client-supplied reference. Any malformed input yields ErrNotFound.
func DecodeKey(encoded string) (*Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed key", ErrNotFound)
	}
	return ParseKeyPath(string(raw))
}

// DecodeKeyOfKind decodes encoded and checks that it refers to an entity of the given kind.
func DecodeKeyOfKind(encoded, kind string) (*Key, error) {
	key, err := DecodeKey(encoded)
	if err != nil {
		return nil, err
	}
	if key.Kind != kind {
		return nil, fmt.Errorf("%w: expected a %s key", ErrNotFound, kind)
	}
	return key, nil
}
