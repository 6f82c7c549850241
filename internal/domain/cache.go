package domain

import "context"

// Cache keys for the two process-wide cached strings.
const (
	CacheKeyAnnouncement    = "RECENT_ANNOUNCEMENTS"
	CacheKeyFeaturedSpeaker = "FEATURED_SPEAKER"
)

// CacheStore is a shared string cache with store-level expiry. Lookups of missing
// or expired keys report ok=false without an error.
type CacheStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AnnouncementService maintains the "nearly sold out" announcement.
type AnnouncementService interface {
	// Refresh recomputes the announcement from current seat counts and returns it.
	// An empty result means the cached entry was removed.
	Refresh(ctx context.Context) (string, error)
	// Get returns the cached announcement, or "" when there is none.
	Get(ctx context.Context) (string, error)
}

// FeaturedSpeakerService maintains the featured speaker message.
type FeaturedSpeakerService interface {
	// Refresh recomputes the message for the speaker within the conference. The cache only
	// changes when the speaker has more than one session there.
	Refresh(ctx context.Context, speakerKey, conferenceKey *Key) error
	// Get returns the cached message, or "" when there is none.
	Get(ctx context.Context) (string, error)
	// HandleTask is the TaskStoreFeaturedSpeaker handler.
	HandleTask(ctx context.Context, t Task) error
}
