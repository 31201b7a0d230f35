package testdata

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/jask/creatordir/internal/directory"
)

var (
	firstNames = []string{"Ana", "Pedro", "Mariana", "Lucas", "Beatriz", "João", "Camila", "Rafael", "Larissa", "Thiago", "Juliana", "Gabriel"}
	lastNames  = []string{"Silva", "Santos", "Oliveira", "Souza", "Costa", "Pereira", "Almeida", "Nunes", "Gomes", "Ribeiro"}
	places     = []struct{ region, city string }{
		{"SP", "Campinas"}, {"SP", "Santos"}, {"SP", "São Paulo"},
		{"RJ", "Niterói"}, {"RJ", "Rio de Janeiro"},
		{"MG", "Belo Horizonte"}, {"PR", "Curitiba"}, {"BA", "Salvador"},
	}
	organizations = []string{"Igreja Central", "Comunidade Vida", "Igreja da Esperança", "Missão Nova"}
	skillPool     = []string{"Video", "Design", "Photography", "Copywriting", "Go", "Music", "Podcast", "Social Media", "Illustration"}
	bios          = []string{
		"Creator focused on short-form video for youth ministries.",
		"Designer and illustrator, loves building visual identities for events.",
		"Photographer covering conferences and worship nights.",
		"",
	}
)

// Participants returns n synthetic participants. The same seed always yields
// the same directory, ids included. Roughly one in ten records leaves optional
// fields empty so placeholders and omitted lines show up.
func Participants(n int, seed uint64) []directory.Participant {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]directory.Participant, 0, n)
	for i := 0; i < n; i++ {
		name := firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))]
		place := places[rng.IntN(len(places))]
		p := directory.Participant{
			ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("testdata:%d:%d", seed, i))).String(),
			Name:         name,
			Region:       place.region,
			City:         place.city,
			Organization: organizations[rng.IntN(len(organizations))],
			Bio:          bios[rng.IntN(len(bios))],
			Skills:       pickSkills(rng),
			Contact: directory.Contact{
				AreaCode: fmt.Sprintf("%d", 11+rng.IntN(80)),
				Number:   fmt.Sprintf("9%08d", rng.IntN(100000000)),
			},
		}
		age := 16 + rng.IntN(40)
		p.Age = &age
		if rng.IntN(10) == 0 {
			p.Age = nil
			p.Organization = ""
			p.Skills = nil
			p.Contact = directory.Contact{}
		}
		if rng.IntN(3) == 0 {
			p.Contact.ProfileURL = "https://www.linkedin.com/in/participant-" + fmt.Sprint(i)
		}
		out = append(out, p)
	}
	return out
}

func pickSkills(rng *rand.Rand) []string {
	n := rng.IntN(4)
	perm := rng.Perm(len(skillPool))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, skillPool[idx])
	}
	return out
}
