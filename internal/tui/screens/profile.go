package screens

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/dustin/go-humanize"
)

// Profile window ids.
const (
	ProfileID      = "profile"
	FriendsID      = "friends"
	CommunitiesID  = "communities"
	ScrapsID       = "scraps"
	TestimonialsID = "testimonials"
)

type profileUser struct {
	name         string
	age          int
	location     string
	relationship string
	profession   string
	about        string
	friends      int
	fans         int
	views        int
	karma        int
}

var orkutUser = profileUser{
	name:         "Paulo Tuppy",
	age:          28,
	location:     "São Paulo, Brasil",
	relationship: "Solteiro",
	profession:   "Desenvolvedor Full Stack",
	about:        "Apaixonado por tecnologia e nostalgia! Criando o Orkut 2.0 com muito carinho. Saudades dos tempos dourados da internet brasileira!",
	friends:      150,
	fans:         89,
	views:        2847,
	karma:        98,
}

type friend struct {
	name     string
	status   presence
	lastSeen string
}

var friends = []friend{
	{name: "João Silva", status: presenceOnline},
	{name: "Maria Santos", status: presenceOnline},
	{name: "Pedro Costa", status: presenceAway, lastSeen: "5 min"},
	{name: "Ana Lima", status: presenceOffline, lastSeen: "2h"},
	{name: "Carlos Mendes", status: presenceOnline},
	{name: "Juliana Rocha", status: presenceAway, lastSeen: "15 min"},
	{name: "Roberto Alves", status: presenceOffline, lastSeen: "1d"},
	{name: "Fernanda Cruz", status: presenceOnline},
}

type community struct {
	name     string
	members  int64
	category string
}

var communities = []community{
	{name: "Eu odeio acordar cedo", members: 2847593, category: "Humor"},
	{name: "Desenvolvedores JavaScript", members: 45892, category: "Tecnologia"},
	{name: "Saudades do Orkut", members: 1847392, category: "Nostalgia"},
	{name: "Gamers Brasileiros", members: 892847, category: "Games"},
	{name: "React Developers", members: 67483, category: "Tecnologia"},
	{name: "MSN Messenger Forever", members: 394857, category: "Nostalgia"},
}

type note struct {
	author string
	text   string
	when   string
	likes  int
}

var scraps = []note{
	{author: "Maria Santos", text: "Parabéns pelo Orkut 2.0! Ficou incrível! Já estou com saudades dos scraps!", when: "2 horas atrás", likes: 15},
	{author: "João Silva", text: "Cara, que nostalgia! Lembra quando a gente ficava horas no Orkut? Bons tempos!", when: "5 horas atrás", likes: 23},
	{author: "Pedro Costa", text: "O chat MSN está perfeito! Conseguiu capturar toda a essência nostálgica!", when: "1 dia atrás", likes: 31},
}

var testimonials = []note{
	{author: "Fernanda Cruz", text: "Amigo de verdade, sempre disposto a ajudar. Programa até dormindo!", when: "3 dias atrás"},
	{author: "Carlos Mendes", text: "Conheço desde a época da lan house. Pessoa nota 10!", when: "2 semanas atrás"},
}

// Profile is the social profile screen: one window per profile section.
type Profile struct {
	base
}

// NewProfile creates the profile screen.
func NewProfile(Options) *Profile {
	p := &Profile{}
	p.base = base{
		name:  NameProfile,
		order: []string{ProfileID, FriendsID, CommunitiesID, ScrapsID, TestimonialsID},
		windows: map[string]static{
			ProfileID: {
				tmpl:  host.Template{Title: "My Profile", Icon: "P", Position: at(2, 1), Size: window.Size{Width: 48, Height: 14}},
				label: "Profile",
				lines: profileLines,
			},
			FriendsID: {
				tmpl:  host.Template{Title: fmt.Sprintf("Friends (%d)", len(friends)), Icon: "F", Size: window.Size{Width: 36, Height: 12}},
				label: "Friends",
				lines: friendLines,
			},
			CommunitiesID: {
				tmpl:  host.Template{Title: "Communities", Icon: "G", Size: window.Size{Width: 52, Height: 10}},
				label: "Communities",
				lines: communityLines,
			},
			ScrapsID: {
				tmpl:  host.Template{Title: fmt.Sprintf("Scraps (%d)", len(scraps)), Icon: "S", Size: window.Size{Width: 48, Height: 16}},
				label: "Scraps",
				lines: func(width int) []render.ContentLine { return noteLines(scraps, width) },
			},
			TestimonialsID: {
				tmpl:  host.Template{Title: "Testimonials", Icon: "T", Size: window.Size{Width: 48, Height: 12}},
				label: "Testimonials",
				lines: func(width int) []render.ContentLine { return noteLines(testimonials, width) },
			},
		},
	}
	return p
}

func (p *Profile) Startup() []string { return []string{ProfileID} }

func profileLines(width int) []render.ContentLine {
	u := orkutUser
	lines := text(
		u.name,
		fmt.Sprintf("%d anos · %s", u.age, u.location),
		u.relationship+" · "+u.profession,
		"",
	)
	lines = append(lines, paragraph(u.about, width)...)
	lines = append(lines,
		render.ContentLine{},
		muted(fmt.Sprintf("%s amigos · %s fãs · %s visitas", humanize.Comma(int64(u.friends)), humanize.Comma(int64(u.fans)), humanize.Comma(int64(u.views)))),
		muted(fmt.Sprintf("karma %d%% %s", u.karma, strings.Repeat("★", (u.karma+10)/20))),
	)
	return lines
}

func friendLines(int) []render.ContentLine {
	lines := make([]render.ContentLine, 0, len(friends))
	for _, f := range friends {
		line := f.status.marker() + " " + f.name
		if f.lastSeen != "" {
			line += " (" + f.lastSeen + ")"
		}
		lines = append(lines, render.ContentLine{Text: line, Muted: f.status == presenceOffline})
	}
	return lines
}

func communityLines(int) []render.ContentLine {
	lines := make([]render.ContentLine, 0, len(communities))
	for _, c := range communities {
		lines = append(lines, render.ContentLine{Text: fmt.Sprintf("%-27s %10s  %s", c.name, humanize.Comma(c.members), c.category)})
	}
	return lines
}

func noteLines(notes []note, width int) []render.ContentLine {
	var lines []render.ContentLine
	for i, n := range notes {
		if i > 0 {
			lines = append(lines, render.ContentLine{})
		}
		header := n.author + " · " + n.when
		if n.likes > 0 {
			header += fmt.Sprintf(" · %d curtidas", n.likes)
		}
		lines = append(lines, muted(header))
		lines = append(lines, paragraph(n.text, width)...)
	}
	return lines
}
