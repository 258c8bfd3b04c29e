package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/client"
)

// bridgeBuffer bounds how many notices can queue while the UI is busy.
const bridgeBuffer = 64

type noticeMsg client.Notice

type navigateMsg client.Route

// Bridge carries notices and navigations from the API client and the session
// store into the bubbletea event loop. It implements client.Notifier and
// client.Navigator and never blocks: when the queue is full the event is
// dropped.
type Bridge struct {
	events chan tea.Msg
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{events: make(chan tea.Msg, bridgeBuffer)}
}

func (b *Bridge) Notify(n client.Notice) {
	b.send(noticeMsg(n))
}

func (b *Bridge) Navigate(r client.Route) {
	b.send(navigateMsg(r))
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
	}
}

// listen waits for the next event. The app re-arms it after every delivery.
func (b *Bridge) listen() tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return <-b.events
	}
}
