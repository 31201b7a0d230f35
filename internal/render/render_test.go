package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/creatordir/internal/directory"
)

type recordingSurface struct {
	cards  []Card
	empty  *Empty
	total  int
	shown  int
	passes int
}

func (s *recordingSurface) Render(cards []Card) {
	s.cards, s.empty = cards, nil
	s.passes++
}

func (s *recordingSurface) ShowEmpty(e Empty) {
	s.cards, s.empty = nil, &e
	s.passes++
}

func (s *recordingSurface) SetStats(total, shown int) { s.total, s.shown = total, shown }

func intPtr(n int) *int { return &n }

func TestGridRendersOneCardPerParticipantInOrder(t *testing.T) {
	full := []directory.Participant{{ID: "A", Name: "A", Region: "SP"}, {ID: "B", Name: "B", Region: "RJ"}, {ID: "C", Name: "C", Region: "SP"}}
	filtered := directory.Apply(full, directory.Criteria{Region: "SP"})

	s := &recordingSurface{}
	Grid(s, filtered, Context{Total: len(full)})
	require.Nil(t, s.empty)
	require.Len(t, s.cards, 2)
	require.Equal(t, "A", s.cards[0].ID)
	require.Equal(t, "C", s.cards[1].ID)
	require.Equal(t, 3, s.total)
	require.Equal(t, 2, s.shown)
}

func TestGridNoMatchesIsNeutral(t *testing.T) {
	s := &recordingSurface{}
	Grid(s, nil, Context{Total: 5, Suggestion: "Ana Silva"})
	require.NotNil(t, s.empty)
	require.Equal(t, EmptyNoMatches, s.empty.Reason)
	require.False(t, s.empty.Retry)
	require.False(t, s.empty.CreateProfile)
	require.Equal(t, "Did you mean Ana Silva?", s.empty.Hint)
	require.Equal(t, 5, s.total)
	require.Equal(t, 0, s.shown)
}

func TestGridEmptyDirectoryOffersCreateProfile(t *testing.T) {
	s := &recordingSurface{}
	Grid(s, []directory.Participant{}, Context{Total: 0})
	require.Equal(t, EmptyDirectory, s.empty.Reason)
	require.True(t, s.empty.CreateProfile)
	require.False(t, s.empty.Retry)
}

func TestGridLoadFailureOffersRetry(t *testing.T) {
	s := &recordingSurface{}
	Grid(s, nil, Context{LoadErr: errors.New("db down")})
	require.Equal(t, EmptyLoadFailed, s.empty.Reason)
	require.Equal(t, "db down", s.empty.Message)
	require.True(t, s.empty.Retry)
	require.False(t, s.empty.CreateProfile)
}

func TestComposeFullCard(t *testing.T) {
	p := directory.Participant{
		ID: "x", Name: "Ana", Age: intPtr(29), Region: "SP", City: "Campinas", Organization: "Igreja Central",
		Bio: "hello", Skills: []string{"Go", " ", "Design"},
		Contact: directory.Contact{AreaCode: "19", Number: "987654321", ProfileURL: "https://linkedin.com/in/ana"},
		Photo:   "https://cdn/ana.jpg",
	}
	c := Compose(p, "")
	require.Equal(t, "Ana", c.Name)
	require.False(t, c.Placeholder)
	require.Equal(t, "29 years", c.Age)
	require.Equal(t, "Campinas/SP • Igreja Central", c.Location)
	require.Equal(t, "hello", c.Bio)
	require.Equal(t, []string{"Go", "Design"}, c.Skills)
	require.Equal(t, "(19) 98765-4321", c.Phone)
	require.Equal(t, "https://wa.me/19987654321", c.PhoneLink)
	require.Equal(t, "https://linkedin.com/in/ana", c.ProfileURL)
	require.Equal(t, "https://cdn/ana.jpg", c.Avatar)
}

func TestComposeSparseCard(t *testing.T) {
	p := directory.Participant{ID: "y"}
	c := Compose(p, "assets/avatar.png")
	require.Equal(t, NamePlaceholder, c.Name)
	require.True(t, c.Placeholder)
	require.Equal(t, "", p.Name, "placeholder must not be written back")
	require.Equal(t, "assets/avatar.png", c.Avatar)
	require.Empty(t, c.Age)
	require.Empty(t, c.Location)
	require.Empty(t, c.Bio)
	require.Empty(t, c.Phone)
	require.Empty(t, c.ProfileURL)
	require.False(t, c.HasSkills())

	require.Equal(t, DefaultAvatar, Compose(p, "").Avatar)
}

func TestComposeLongBioIsNotTruncated(t *testing.T) {
	bio := strings.Repeat("a", directory.BioSoftLimit+1)
	c := Compose(directory.Participant{Name: "n", Bio: bio}, "")
	require.True(t, c.LongBio)
	require.Equal(t, bio, c.Bio)
}

func TestLocation(t *testing.T) {
	cases := []struct {
		p    directory.Participant
		want string
	}{
		{directory.Participant{City: "Santos", Region: "SP", Organization: "Org"}, "Santos/SP • Org"},
		{directory.Participant{City: "Santos", Organization: "Org"}, "Santos • Org"},
		{directory.Participant{Region: "SP", Organization: "Org"}, "SP • Org"},
		{directory.Participant{Organization: "Org"}, "Org"},
		{directory.Participant{City: "Santos", Region: "SP"}, "Santos/SP"},
		{directory.Participant{Region: "SP"}, "SP"},
		{directory.Participant{}, ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Location(tc.p))
	}
}

func TestFormatPhone(t *testing.T) {
	require.Equal(t, "98765-4321", FormatPhone("", "987654321"))
	require.Equal(t, "(11) 1234", FormatPhone("11", "1234"))
	require.Equal(t, "(21) 91234-5678", FormatPhone(" 21", "9 1234-5678"))
}
