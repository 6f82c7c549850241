package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TeeShirtSize is the shirt size a user picked for conference swag.
type TeeShirtSize string

// ShirtNotSpecified is the default size of a new profile.
const ShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"

var teeShirtSizes = []TeeShirtSize{
	ShirtNotSpecified,
	"XS_M", "XS_W", "S_M", "S_W", "M_M", "M_W", "L_M", "L_W",
	"XL_M", "XL_W", "XXL_M", "XXL_W", "XXXL_M", "XXXL_W",
}

// ParseTeeShirtSize validates s (case-insensitive) against the known sizes.
func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	size := TeeShirtSize(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(teeShirtSizes, size) {
		return "", fmt.Errorf("%w: unknown teeShirtSize %q", ErrInvalidInput, s)
	}
	return size, nil
}

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	UserID   string
	Email    string
	Nickname string
}

// Profile holds per-user state: display data, registrations and the session wishlist.
// ConferenceKeysToAttend and SessionKeysWishlist hold encoded keys in insertion order.
type Profile struct {
	UserID                 string
	DisplayName            string
	MainEmail              string
	TeeShirtSize           TeeShirtSize
	ConferenceKeysToAttend []string
	SessionKeysWishlist    []string
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewProfile returns the profile lazily created on a user's first access.
func NewProfile(id Identity, now time.Time) *Profile {
	return &Profile{
		UserID:                 id.UserID,
		DisplayName:            id.Nickname,
		MainEmail:              id.Email,
		TeeShirtSize:           ShirtNotSpecified,
		ConferenceKeysToAttend: []string{},
		SessionKeysWishlist:    []string{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// IsAttending reports whether the conference key is in the attending list.
func (p *Profile) IsAttending(conferenceKey string) bool {
	return slices.Contains(p.ConferenceKeysToAttend, conferenceKey)
}

// Attend appends conferenceKey; it fails with ErrConflict if already present.
func (p *Profile) Attend(conferenceKey string) error {
	if p.IsAttending(conferenceKey) {
		return fmt.Errorf("%w: you have already registered for this conference", ErrConflict)
	}
	p.ConferenceKeysToAttend = append(p.ConferenceKeysToAttend, conferenceKey)
	return nil
}

// Unattend removes conferenceKey and reports whether it was present.
func (p *Profile) Unattend(conferenceKey string) bool {
	i := slices.Index(p.ConferenceKeysToAttend, conferenceKey)
	if i < 0 {
		return false
	}
	p.ConferenceKeysToAttend = slices.Delete(p.ConferenceKeysToAttend, i, i+1)
	return true
}

// HasWishlisted reports whether sessionKey is in the wishlist.
func (p *Profile) HasWishlisted(sessionKey string) bool {
	return slices.Contains(p.SessionKeysWishlist, sessionKey)
}

// Wish appends sessionKey; it fails with ErrConflict if already present.
func (p *Profile) Wish(sessionKey string) error {
	if p.HasWishlisted(sessionKey) {
		return fmt.Errorf("%w: you have already added this session to your wishlist", ErrConflict)
	}
	p.SessionKeysWishlist = append(p.SessionKeysWishlist, sessionKey)
	return nil
}

// Unwish removes sessionKey and reports whether it was present.
func (p *Profile) Unwish(sessionKey string) bool {
	i := slices.Index(p.SessionKeysWishlist, sessionKey)
	if i < 0 {
		return false
	}
	p.SessionKeysWishlist = slices.Delete(p.SessionKeysWishlist, i, i+1)
	return true
}

// ProfileRepository defines storage for profiles.
type ProfileRepository interface {
	// Create inserts p. Returns ErrConflict if a profile already exists for p.UserID.
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// GetMulti returns the profiles found, keyed by user ID.
	GetMulti(ctx context.Context, userIDs []string) (map[string]*Profile, error)
	// Update writes p if its stored version still equals p.Version, then bumps p.Version.
	Update(ctx context.Context, p *Profile) error
}

// ProfileService defines self-service profile operations.
type ProfileService interface {
	GetProfile(ctx context.Context, id Identity) (*Profile, error)
	// SaveProfile updates the display name and/or shirt size; empty values are ignored.
	SaveProfile(ctx context.Context, id Identity, displayName, teeShirtSize string) (*Profile, error)
}
