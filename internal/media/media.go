// Package media holds the data model shared by the scan, resolve, and plan
// stages: media types, parsed episodes, and the media item being renamed.
package media

import "time"

// MediaType classifies a folder as a movie or a TV show.
type MediaType string

const (
	Movie  MediaType = "movie"
	TVShow MediaType = "tv"
)

// String returns a human-friendly label.
func (t MediaType) String() string {
	switch t {
	case Movie:
		return "Movie"
	case TVShow:
		return "TV Show"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	return t == Movie || t == TVShow
}

// Episode is one parsed episode file. Season 0 is specials; Episode 0 means
// the number is unknown (date-based episodes). Empty Title and zero AirDate
// mean absent.
type Episode struct {
	Season     int       `json:"season"`
	Episode    int       `json:"episode"`
	Title      string    `json:"title,omitempty"`
	SourcePath string    `json:"source_path"`
	AirDate    time.Time `json:"air_date,omitzero"`
}

// IsDateBased reports whether the episode is identified by air date.
func (e Episode) IsDateBased() bool {
	return !e.AirDate.IsZero()
}

// WithTitle returns a copy of e with its title replaced.
func (e Episode) WithTitle(title string) Episode {
	e.Title = title
	return e
}

// Item is the media being renamed. Items are values: the With* methods
// return modified copies and never touch the receiver's episode slice.
//
// ExternalIDIsManual implies ExternalID is set.
type Item struct {
	SourceFolderPath   string    `json:"source_folder_path"`
	Title              string    `json:"title"`
	Year               int       `json:"year,omitempty"`
	ExternalID         string    `json:"external_id,omitempty"`
	MediaType          MediaType `json:"media_type"`
	Edition            string    `json:"edition,omitempty"`
	ExternalIDIsManual bool      `json:"external_id_is_manual,omitempty"`
	Episodes           []Episode `json:"episodes,omitempty"`
	ProviderID         int       `json:"provider_id,omitempty"`
}

// NewItem builds an item for a scanned folder.
func NewItem(folder, title string, mediaType MediaType) Item {
	return Item{SourceFolderPath: folder, Title: title, MediaType: mediaType}
}

func (i Item) clone() Item {
	if i.Episodes != nil {
		i.Episodes = append([]Episode(nil), i.Episodes...)
	}
	return i
}

// WithExternalID returns a copy carrying id. A manual flag on an empty id is
// dropped.
func (i Item) WithExternalID(id string, manual bool) Item {
	c := i.clone()
	c.ExternalID = id
	c.ExternalIDIsManual = manual && id != ""
	return c
}

// WithYear returns a copy with the release year replaced. 0 clears it.
func (i Item) WithYear(year int) Item {
	c := i.clone()
	if year < 0 {
		year = 0
	}
	c.Year = year
	return c
}

// WithTitle returns a copy with the title replaced.
func (i Item) WithTitle(title string) Item {
	c := i.clone()
	c.Title = title
	return c
}

// WithEdition returns a copy with the edition replaced.
func (i Item) WithEdition(edition string) Item {
	c := i.clone()
	c.Edition = edition
	return c
}

// WithEpisodes returns a copy holding its own copy of episodes.
func (i Item) WithEpisodes(episodes []Episode) Item {
	c := i
	c.Episodes = append([]Episode(nil), episodes...)
	return c
}

// WithProviderID returns a copy with the provider's internal ID replaced.
func (i Item) WithProviderID(id int) Item {
	c := i.clone()
	c.ProviderID = id
	return c
}

// HasExternalID reports whether an external ID is set.
func (i Item) HasExternalID() bool {
	return i.ExternalID != ""
}
