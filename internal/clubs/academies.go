package clubs

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
)

// Academy is a youth setup derived from a club entry. The attribute bonus is
// applied once at character creation.
type Academy struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Club       string         `json:"club"`
	League     string         `json:"league"`
	Prestige   int            `json:"prestige"`
	Bonus      map[string]int `json:"bonus"`
	Desc       string         `json:"desc"`
	SourceTier int            `json:"source_tier"`
}

type academyTemplate struct {
	bonus map[string]int
	desc  string
}

var academyTemplates = []academyTemplate{
	{bonus: map[string]int{"dribbling": 2, "passing": 2}, desc: "Technical school focused on first touch and ball control."},
	{bonus: map[string]int{"passing": 2, "physical": 2}, desc: "Structured development with strong tactical habits."},
	{bonus: map[string]int{"pace": 2, "shooting": 2}, desc: "Direct attacking profile built on speed and finishing."},
	{bonus: map[string]int{"physical": 3, "passing": 1}, desc: "High-intensity academy built around duels and discipline."},
	{bonus: map[string]int{"pace": 1, "dribbling": 3}, desc: "Expressive style that rewards flair and one-vs-one skill."},
	{bonus: map[string]int{"shooting": 2, "passing": 2}, desc: "Balanced final-third training with decision-making focus."},
}

func slugify(v string) string {
	var b strings.Builder
	lastUnder := true
	for _, r := range strings.ToLower(v) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnder = false
		default:
			if !lastUnder {
				b.WriteByte('_')
				lastUnder = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

func academyFromClub(c Club, tier int) Academy {
	h := fnv.New32a()
	h.Write([]byte(c.Name + ":" + c.League + ":" + c.Country))
	tpl := academyTemplates[int(h.Sum32())%len(academyTemplates)]

	bonus := make(map[string]int, len(tpl.bonus)+1)
	for k, v := range tpl.bonus {
		bonus[k] = v
	}
	// High-prestige academies sharpen their signature stat a little more.
	if c.Prestige >= 85 {
		top, best := "", -1
		for k, v := range bonus {
			if v > best || (v == best && k < top) {
				top, best = k, v
			}
		}
		bonus[top]++
	}

	return Academy{
		ID:         "academy_" + slugify(c.Name),
		Name:       c.Name + " Academy",
		Club:       c.Name,
		League:     c.Country + " " + c.League,
		Prestige:   c.Prestige,
		Bonus:      bonus,
		Desc:       tpl.desc,
		SourceTier: tier,
	}
}

// AcademyByID resolves an academy choice made at character creation. Any
// club in the table can host an academy.
func AcademyByID(id string) (Academy, bool) {
	for t, tier := range Tiers {
		for _, c := range tier {
			a := academyFromClub(c, t+1)
			if a.ID == id {
				return a, true
			}
		}
	}
	return Academy{}, false
}

// RandomAcademies draws count distinct academies for the creation screen,
// preferring each club's highest-prestige table entry.
func RandomAcademies(r *rand.Rand, count int) []Academy {
	type entry struct {
		club Club
		tier int
	}
	byName := map[string]entry{}
	for t, tier := range Tiers {
		for _, c := range tier {
			if prev, ok := byName[c.Name]; !ok || c.Prestige > prev.club.Prestige {
				byName[c.Name] = entry{club: c, tier: t + 1}
			}
		}
	}
	pool := make([]entry, 0, len(byName))
	for _, e := range byName {
		pool = append(pool, e)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].club.Name < pool[j].club.Name })
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if count < 1 {
		count = 1
	}
	if count > len(pool) {
		count = len(pool)
	}
	out := make([]Academy, 0, count)
	for _, e := range pool[:count] {
		out = append(out, academyFromClub(e.club, e.tier))
	}
	return out
}
