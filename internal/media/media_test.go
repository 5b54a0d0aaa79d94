package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMediaType_String(t *testing.T) {
	assert.Equal(t, "Movie", Movie.String())
	assert.Equal(t, "TV Show", TVShow.String())
	assert.True(t, Movie.Valid())
	assert.True(t, TVShow.Valid())
	assert.False(t, MediaType("music").Valid())
}

func TestEpisode_IsDateBased(t *testing.T) {
	assert.False(t, Episode{Season: 1, Episode: 1}.IsDateBased())
	assert.True(t, Episode{Season: 1, AirDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)}.IsDateBased())
}

func TestItem_WithExternalID(t *testing.T) {
	item := NewItem("/media/The Matrix", "The Matrix", Movie)

	manual := item.WithExternalID("tt0133093", true)
	assert.Equal(t, "tt0133093", manual.ExternalID)
	assert.True(t, manual.ExternalIDIsManual)
	assert.Empty(t, item.ExternalID, "receiver must not change")

	cleared := manual.WithExternalID("", true)
	assert.Empty(t, cleared.ExternalID)
	assert.False(t, cleared.ExternalIDIsManual, "manual flag requires an id")
}

func TestItem_WithBuildersCopy(t *testing.T) {
	eps := []Episode{{Season: 1, Episode: 1, Title: "Pilot"}}
	item := NewItem("/media/Show", "Show", TVShow).WithEpisodes(eps)

	eps[0].Title = "changed"
	assert.Equal(t, "Pilot", item.Episodes[0].Title, "WithEpisodes must copy the slice")

	other := item.WithYear(2001)
	other.Episodes[0].Title = "mutated"
	assert.Equal(t, "Pilot", item.Episodes[0].Title, "With* must not share episodes")
	assert.Equal(t, 0, item.Year)
	assert.Equal(t, 2001, other.Year)

	assert.Equal(t, 0, item.WithYear(-5).Year)
	assert.Equal(t, "Other", item.WithTitle("Other").Title)
	assert.Equal(t, "Extended", item.WithEdition("Extended").Edition)
	assert.Equal(t, 1399, item.WithProviderID(1399).ProviderID)
	assert.Equal(t, "/media/Show", item.WithProviderID(1).SourceFolderPath)
}

func TestItem_HasExternalID(t *testing.T) {
	assert.False(t, Item{}.HasExternalID())
	assert.True(t, Item{ExternalID: "tt1"}.HasExternalID())
}
