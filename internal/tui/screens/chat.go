package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/logging"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/window"
)

const (
	// ContactsID is the contact list window.
	ContactsID = "contacts"
	chatPrefix = "chat-"
	userAuthor = "Você"
)

type presence int

const (
	presenceOnline presence = iota
	presenceAway
	presenceOffline
)

func (p presence) marker() string {
	switch p {
	case presenceOnline:
		return "●"
	case presenceAway:
		return "◐"
	default:
		return "○"
	}
}

func (p presence) label() string {
	switch p {
	case presenceOnline:
		return "Online"
	case presenceAway:
		return "Ausente"
	default:
		return "Offline"
	}
}

type contact struct {
	id     string
	name   string
	status presence
}

var contacts = []contact{
	{id: "joao", name: "João Silva", status: presenceOnline},
	{id: "maria", name: "Maria Santos", status: presenceOnline},
	{id: "pedro", name: "Pedro Costa", status: presenceAway},
	{id: "ana", name: "Ana Lima", status: presenceOnline},
	{id: "carlos", name: "Carlos Mendes", status: presenceAway},
	{id: "juliana", name: "Juliana Rocha", status: presenceOffline},
}

var demoResponses = []string{
	"Oi! Tudo bem? :)",
	"Que legal esse Orkut 2.0!",
	"As janelas flutuantes são nostálgicas demais!",
	"Lembra quando a gente ficava horas no MSN?",
	"Saudades dos emoticons clássicos! :P",
	"Vou compartilhar isso com todo mundo!",
	"Ficou igual ao MSN original! <3",
	"Que nostalgia boa! :D",
	"Parabéns pelo projeto!",
	"Quando vai ter os nudges? XD",
}

// ChatID returns the window id of the conversation with contactID.
func ChatID(contactID string) string {
	return chatPrefix + contactID
}

func findContact(id string) (contact, bool) {
	for _, c := range contacts {
		if c.id == id {
			return c, true
		}
	}
	return contact{}, false
}

type chatMessage struct {
	author string
	text   string
	at     time.Time
}

type conversation struct {
	contact  contact
	messages []chatMessage
	input    textinput.Model
}

// Chat is the messenger screen: a contact list plus one window per
// conversation. Online contacts answer after a random delay.
type Chat struct {
	opts  Options
	host  *host.Host
	convs map[string]*conversation
	log   logging.Logger
}

// NewChat creates the chat screen.
func NewChat(opts Options) *Chat {
	return &Chat{
		opts:  opts.withDefaults(),
		convs: make(map[string]*conversation),
		log:   logging.With("component", "chat"),
	}
}

func (c *Chat) Name() string        { return NameChat }
func (c *Chat) Startup() []string   { return []string{ContactsID} }
func (c *Chat) Attach(h *host.Host) { c.host = h }

func (c *Chat) Launchers() []Launcher {
	out := []Launcher{{ID: ContactsID, Icon: "M", Label: "Contacts"}}
	for _, ct := range contacts {
		first, _, _ := strings.Cut(ct.name, " ")
		out = append(out, Launcher{ID: ChatID(ct.id), Icon: ct.status.marker(), Label: first})
	}
	return out
}

func (c *Chat) Template(id string) (host.Template, bool) {
	if id == ContactsID {
		return host.Template{
			Title:      "MSN Messenger - Contacts",
			Icon:       "M",
			Position:   at(1, 0),
			Size:       window.Size{Width: 30, Height: 16},
			NoClose:    true,
			NoMaximize: true,
		}, true
	}
	ct, ok := c.contactFor(id)
	if !ok {
		return host.Template{}, false
	}
	c.ensureConversation(id, ct)
	return host.Template{
		Title: "Chat with " + ct.name,
		Icon:  ct.status.marker(),
		Size:  window.Size{Width: 46, Height: 14},
	}, true
}

func (c *Chat) contactFor(id string) (contact, bool) {
	contactID, ok := strings.CutPrefix(id, chatPrefix)
	if !ok {
		return contact{}, false
	}
	return findContact(contactID)
}

func (c *Chat) ensureConversation(id string, ct contact) *conversation {
	if conv, ok := c.convs[id]; ok {
		return conv
	}
	greeting := "Oi! Tudo bem?"
	if ct.status != presenceOnline {
		greeting = "Oi! Acabei de voltar!"
	}
	conv := &conversation{
		contact:  ct,
		messages: []chatMessage{{author: ct.name, text: greeting, at: c.opts.Now()}},
		input:    newInput("Type a message"),
	}
	c.convs[id] = conv
	return conv
}

// contactRows maps each line of the contact list to a contact id. Header
// lines map to "".
func contactRows() ([]render.ContentLine, []string) {
	var lines []render.ContentLine
	var ids []string
	for _, status := range []presence{presenceOnline, presenceAway, presenceOffline} {
		var group []contact
		for _, ct := range contacts {
			if ct.status == status {
				group = append(group, ct)
			}
		}
		lines = append(lines, muted(fmt.Sprintf("%s (%d)", status.label(), len(group))))
		ids = append(ids, "")
		for _, ct := range group {
			line := render.ContentLine{Text: " " + status.marker() + " " + ct.name, Muted: status == presenceOffline}
			lines = append(lines, line)
			ids = append(ids, ct.id)
		}
	}
	return lines, ids
}

func (c *Chat) Content(id string, inner window.Size) []render.ContentLine {
	if id == ContactsID {
		lines, _ := contactRows()
		return lines
	}
	conv, ok := c.convs[id]
	if !ok {
		return nil
	}

	status := muted(conv.contact.status.marker() + " " + conv.contact.status.label())
	if c.host != nil && c.host.Pending(id) {
		status = muted(conv.contact.name + " está digitando...")
	}
	if inner.Height < 4 {
		return []render.ContentLine{status, inputLine(conv.input, inner.Width)}
	}

	var transcript []render.ContentLine
	for _, m := range conv.messages {
		prefix := fmt.Sprintf("[%s] %s: ", m.at.Format("15:04"), m.author)
		for i, l := range wrap(prefix+m.text, inner.Width) {
			transcript = append(transcript, render.ContentLine{Text: l, Muted: i == 0 && m.author == userAuthor})
		}
	}
	room := inner.Height - 3
	if len(transcript) > room {
		transcript = transcript[len(transcript)-room:]
	}
	for len(transcript) < room {
		transcript = append(transcript, render.ContentLine{})
	}

	lines := make([]render.ContentLine, 0, inner.Height)
	lines = append(lines, status)
	lines = append(lines, transcript...)
	lines = append(lines, muted(strings.Repeat("─", inner.Width)))
	lines = append(lines, inputLine(conv.input, inner.Width))
	return lines
}

func (c *Chat) Select(id string, line int) (string, bool) {
	if id != ContactsID {
		return "", false
	}
	_, ids := contactRows()
	if line < 0 || line >= len(ids) || ids[line] == "" {
		return "", false
	}
	return ChatID(ids[line]), true
}

func (c *Chat) HandleKey(id string, msg tea.KeyMsg) (bool, tea.Cmd) {
	conv, ok := c.convs[id]
	if !ok {
		return false, nil
	}
	if msg.Type == tea.KeyEnter {
		c.send(id, conv)
		return true, nil
	}
	var cmd tea.Cmd
	conv.input, cmd = conv.input.Update(msg)
	return true, cmd
}

func (c *Chat) send(id string, conv *conversation) {
	text := strings.TrimSpace(conv.input.Value())
	if text == "" {
		return
	}
	conv.messages = append(conv.messages, chatMessage{author: userAuthor, text: text, at: c.opts.Now()})
	conv.input.Reset()

	if conv.contact.status != presenceOnline || c.host == nil {
		return
	}
	delay := c.replyDelay()
	if err := c.host.Schedule(id, delay, func() { c.reply(id) }); err != nil {
		c.log.Warn("unable to schedule reply", "id", id, "error", err)
		return
	}
	c.log.Debug("reply scheduled", "id", id, "delay", delay.String())
}

func (c *Chat) replyDelay() time.Duration {
	span := c.opts.ReplyMax - c.opts.ReplyMin
	if span <= 0 {
		return c.opts.ReplyMin
	}
	return c.opts.ReplyMin + time.Duration(c.opts.Intn(int(span)+1))
}

func (c *Chat) reply(id string) {
	conv, ok := c.convs[id]
	if !ok {
		return
	}
	text := demoResponses[c.opts.Intn(len(demoResponses))]
	conv.messages = append(conv.messages, chatMessage{author: conv.contact.name, text: text, at: c.opts.Now()})
}

func (c *Chat) Closed(id string) {
	delete(c.convs, id)
}

// transcript returns "author: text" for every message in id.
func (c *Chat) transcript(id string) []string {
	conv, ok := c.convs[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(conv.messages))
	for _, m := range conv.messages {
		out = append(out, m.author+": "+m.text)
	}
	return out
}
