package mockapi

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/creatordir/internal/directory"
)

// fixtureFile is the top-level TOML structure of a participants fixture.
type fixtureFile struct {
	Participant []fixtureParticipant `toml:"participant"`
}

type fixtureParticipant struct {
	ID       string   `toml:"id"`
	Name     string   `toml:"name"`
	Age      *int     `toml:"age"`
	UF       string   `toml:"uf"`
	City     string   `toml:"city"`
	Church   string   `toml:"church"`
	Bio      string   `toml:"bio"`
	Skills   []string `toml:"skills"`
	DDD      string   `toml:"ddd"`
	Phone    string   `toml:"phone"`
	LinkedIn string   `toml:"linkedin"`
	Photo    string   `toml:"photo"`
}

// LoadFixture reads a participants fixture from path.
func LoadFixture(path string) ([]directory.Participant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses TOML bytes into participants, keeping file order.
func ParseFixture(data []byte) ([]directory.Participant, error) {
	var f fixtureFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	out := make([]directory.Participant, 0, len(f.Participant))
	seen := make(map[string]struct{}, len(f.Participant))
	for i, fp := range f.Participant {
		id := strings.TrimSpace(fp.ID)
		if id == "" {
			return nil, fmt.Errorf("participant[%d]: id is required", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("participant[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
		out = append(out, directory.Participant{
			ID:           id,
			Name:         fp.Name,
			Age:          fp.Age,
			Region:       fp.UF,
			City:         fp.City,
			Organization: fp.Church,
			Bio:          fp.Bio,
			Skills:       fp.Skills,
			Contact: directory.Contact{
				AreaCode:   fp.DDD,
				Number:     fp.Phone,
				ProfileURL: fp.LinkedIn,
			},
			Photo: fp.Photo,
		})
	}
	return out, nil
}

// DefaultFixture is served when no fixture file is given.
const DefaultFixture = `# creatordir mock participants

[[participant]]
id = "p-ana"
name = "Ana Silva"
age = 29
uf = "SP"
city = "Campinas"
church = "Igreja Central"
bio = "Motion designer and weekend drummer."
skills = ["Design", "Motion", "Music"]
ddd = "19"
phone = "987654321"
linkedin = "https://www.linkedin.com/in/ana-silva"

[[participant]]
id = "p-pedro"
name = "Pedro Nunes"
age = 34
uf = "RJ"
city = "Niterói"
church = "Comunidade Viva"
skills = ["Video", "Photography"]

[[participant]]
id = "p-mariana"
name = "Mariana Gomes"
uf = "SP"
city = "Santos"
church = "Igreja Central"
bio = "Backend developer who writes about faith and tech."
skills = ["Go", "Writing"]
linkedin = "https://www.linkedin.com/in/mariana-gomes"

[[participant]]
id = "p-lucas"
name = "Lucas Prado"
age = 22
uf = "MG"
city = "Belo Horizonte"
skills = []
ddd = "31"
phone = "912345678"
`
