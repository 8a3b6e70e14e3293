package channel

import (
	"regexp"
	"strings"

	"lexcircle-be/internal/constant"
)

// Subject is the resolver's view of a subject preference: only the name
// participates in channel derivation.
type Subject struct {
	Name string
}

// Channel is one selectable chat channel.
type Channel struct {
	ID    string
	Label string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug lowercases s and collapses whitespace runs into single hyphens, so
// "Yale University" becomes "yale-university". Two clients slugging the same
// inputs always land on the same channel.
func Slug(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// Resolve derives the channel list for a user: the global channel always
// comes first, then the school channel, then one channel per subject (at
// most 3, insertion order). Without a school there are no school or subject
// channels.
func Resolve(school *string, subjects []Subject) []Channel {
	channels := []Channel{
		{ID: constant.MainChannelID, Label: constant.MainChannelLabel},
	}

	if school == nil || strings.TrimSpace(*school) == "" {
		return channels
	}

	channels = append(channels, Channel{
		ID:    Slug(*school),
		Label: *school,
	})

	for i, subject := range subjects {
		if i >= constant.MaxSubjectPreferences {
			break
		}
		channels = append(channels, Channel{
			ID:    Slug(*school + " " + subject.Name),
			Label: "#" + subject.Name,
		})
	}

	return channels
}
