package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BioSoftLimit is the informational bio length cap; longer bios are still shown in full.
const BioSoftLimit = 450

// Participant is one directory profile as returned by the API.
type Participant struct {
	ID           string
	Name         string
	Age          *int
	Region       string
	City         string
	Organization string
	Bio          string
	Skills       []string
	Contact      Contact
	// Photo is an opaque URL or embedded image reference, passed through untouched.
	Photo string
}

// Contact holds the optional reachability fields of a participant.
type Contact struct {
	AreaCode   string
	Number     string
	ProfileURL string
}

// HasPhone reports whether a subscriber number is present.
func (c Contact) HasPhone() bool { return strings.TrimSpace(c.Number) != "" }

// wireParticipant mirrors the JSON payload. Every field is decoded loosely:
// the upstream profile form has stored ages as strings, skills as CSV text
// and phone numbers as JSON numbers.
type wireParticipant struct {
	ID       json.RawMessage `json:"id"`
	Name     json.RawMessage `json:"name"`
	Age      json.RawMessage `json:"age"`
	UF       json.RawMessage `json:"uf"`
	City     json.RawMessage `json:"city"`
	Church   json.RawMessage `json:"church"`
	Bio      json.RawMessage `json:"bio"`
	Skills   json.RawMessage `json:"skills"`
	DDD      json.RawMessage `json:"ddd"`
	Phone    json.RawMessage `json:"phone"`
	LinkedIn json.RawMessage `json:"linkedin"`
	Photo    json.RawMessage `json:"photo"`
}

// MarshalJSON writes the participant in the API's wire format.
func (p Participant) MarshalJSON() ([]byte, error) {
	out := struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Age      *int     `json:"age"`
		UF       string   `json:"uf,omitempty"`
		City     string   `json:"city,omitempty"`
		Church   string   `json:"church,omitempty"`
		Bio      string   `json:"bio,omitempty"`
		Skills   []string `json:"skills"`
		DDD      string   `json:"ddd,omitempty"`
		Phone    string   `json:"phone,omitempty"`
		LinkedIn string   `json:"linkedin,omitempty"`
		Photo    string   `json:"photo,omitempty"`
	}{
		ID:       p.ID,
		Name:     p.Name,
		Age:      p.Age,
		UF:       p.Region,
		City:     p.City,
		Church:   p.Organization,
		Bio:      p.Bio,
		Skills:   p.Skills,
		DDD:      p.Contact.AreaCode,
		Phone:    p.Contact.Number,
		LinkedIn: p.Contact.ProfileURL,
		Photo:    p.Photo,
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a single wire record, tolerating loose field types.
func (p *Participant) UnmarshalJSON(data []byte) error {
	var w wireParticipant
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Participant{
		ID:           strings.TrimSpace(rawText(w.ID)),
		Name:         strings.TrimSpace(rawText(w.Name)),
		Age:          rawAge(w.Age),
		Region:       strings.TrimSpace(rawText(w.UF)),
		City:         strings.TrimSpace(rawText(w.City)),
		Organization: strings.TrimSpace(rawText(w.Church)),
		Bio:          strings.TrimSpace(rawText(w.Bio)),
		Skills:       rawSkills(w.Skills),
		Contact: Contact{
			AreaCode:   strings.TrimSpace(rawText(w.DDD)),
			Number:     strings.TrimSpace(rawText(w.Phone)),
			ProfileURL: strings.TrimSpace(rawText(w.LinkedIn)),
		},
		Photo: rawText(w.Photo),
	}
	return nil
}

// DecodeResult is the outcome of decoding a directory payload.
type DecodeResult struct {
	Participants []Participant
	// Skipped lists the positions of array elements that were not decodable records.
	Skipped []int
}

// DecodeList decodes a JSON array of participants element by element. Only
// elements that are not JSON objects are skipped; a record with odd fields
// loses those fields, never the whole card. Records without an id
// get a deterministic one derived from their position and name.
func DecodeList(data []byte) (DecodeResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DecodeResult{}, fmt.Errorf("decode participant list: %w", err)
	}
	res := DecodeResult{Participants: make([]Participant, 0, len(raw))}
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			res.Skipped = append(res.Skipped, i)
			continue
		}
		var p Participant
		if err := json.Unmarshal(item, &p); err != nil {
			res.Skipped = append(res.Skipped, i)
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("participant:%d:%s", i, p.Name))).String()
		}
		res.Participants = append(res.Participants, p)
	}
	return res, nil
}

// rawText reads a scalar field as text: strings as-is, numbers in their
// literal form. Anything else (null, bool, object, array) reads as "".
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawAge(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return nil
	}
	age := int(f)
	return &age
}

func rawSkills(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		list = strings.Split(text, ",")
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
