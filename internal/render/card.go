package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jask/creatordir/internal/directory"
)

const (
	// NamePlaceholder is shown when a participant has no name. It is never stored.
	NamePlaceholder = "Name not provided"
	// NoSkillsPlaceholder replaces an empty skill row.
	NoSkillsPlaceholder = "No skills listed"
	// DefaultAvatar is the avatar reference used when no other default is configured.
	DefaultAvatar = "assets/img/default-avatar.jpg"

	locationSep = " • "
)

// Card is the display composition of one participant. Empty string fields
// are lines the card omits.
type Card struct {
	ID          string
	Name        string
	Placeholder bool
	Avatar      string
	Age         string
	Location    string
	Bio         string
	LongBio     bool
	Skills      []string
	Phone       string
	PhoneLink   string
	ProfileURL  string
}

// HasSkills reports whether the card shows skill tags rather than the placeholder.
func (c Card) HasSkills() bool { return len(c.Skills) > 0 }

// Compose builds the card for p. Missing optional fields drop their line.
func Compose(p directory.Participant, defaultAvatar string) Card {
	c := Card{
		ID:         p.ID,
		Name:       strings.TrimSpace(p.Name),
		Avatar:     p.Photo,
		Location:   Location(p),
		Bio:        strings.TrimSpace(p.Bio),
		ProfileURL: strings.TrimSpace(p.Contact.ProfileURL),
	}
	if c.Name == "" {
		c.Name = NamePlaceholder
		c.Placeholder = true
	}
	if strings.TrimSpace(c.Avatar) == "" {
		c.Avatar = defaultAvatar
		if c.Avatar == "" {
			c.Avatar = DefaultAvatar
		}
	}
	if p.Age != nil && *p.Age > 0 {
		c.Age = fmt.Sprintf("%d years", *p.Age)
	}
	c.LongBio = len([]rune(c.Bio)) > directory.BioSoftLimit
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			c.Skills = append(c.Skills, s)
		}
	}
	if p.Contact.HasPhone() {
		c.Phone = FormatPhone(p.Contact.AreaCode, p.Contact.Number)
		c.PhoneLink = "https://wa.me/" + digits(p.Contact.AreaCode) + digits(p.Contact.Number)
	}
	return c
}

// Location joins "city/region" (or whichever is present) with the
// organization, placing the separator only between present parts.
func Location(p directory.Participant) string {
	city, region := strings.TrimSpace(p.City), strings.TrimSpace(p.Region)
	place := city
	switch {
	case city != "" && region != "":
		place = city + "/" + region
	case city == "":
		place = region
	}
	parts := make([]string, 0, 2)
	for _, s := range []string{place, strings.TrimSpace(p.Organization)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, locationSep)
}

// FormatPhone renders an area code and subscriber number as "(19) 98765-4321".
// Numbers with five digits or fewer are left unsplit.
func FormatPhone(areaCode, number string) string {
	n := digits(number)
	if n == "" {
		n = strings.TrimSpace(number)
	}
	if len(n) > 5 {
		n = n[:5] + "-" + n[5:]
	}
	if ac := digits(areaCode); ac != "" {
		return "(" + ac + ") " + n
	}
	return n
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
