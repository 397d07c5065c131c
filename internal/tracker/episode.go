package tracker

import (
	"iter"
	"slices"
	"time"
)

// IsAired reports whether the episode aired on or before today.
// Episodes without an air date have not aired.
func IsAired(ep Episode, today time.Time) bool {
	if ep.AirDate.IsZero() {
		return false
	}
	return !civilDay(ep.AirDate).After(civilDay(today))
}

// IsNewEpisode reports whether ep has aired and sorts strictly after pos,
// comparing season first and episode number second.
func IsNewEpisode(ep Episode, pos WatchPosition, today time.Time) bool {
	if !IsAired(ep, today) {
		return false
	}
	if ep.Season != pos.Season {
		return ep.Season > pos.Season
	}
	return ep.Number > pos.Episode
}

// NewEpisodes lazily filters seq down to the episodes that are new relative
// to pos. Input order is preserved.
func NewEpisodes(seq iter.Seq[Episode], pos WatchPosition, today time.Time) iter.Seq[Episode] {
	return func(yield func(Episode) bool) {
		for ep := range seq {
			if !IsNewEpisode(ep, pos, today) {
				continue
			}
			if !yield(ep) {
				return
			}
		}
	}
}

// CollectNewEpisodes is NewEpisodes over a slice, collected eagerly.
func CollectNewEpisodes(episodes []Episode, pos WatchPosition, today time.Time) []Episode {
	return slices.Collect(NewEpisodes(slices.Values(episodes), pos, today))
}
