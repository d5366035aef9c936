package session

import (
	"github.com/cooldogedev/prism/packet"
	"github.com/scylladb/go-set/strset"
)

// Title parts a Tracker remembers as shown.
const (
	trackedTitle    = "title"
	trackedSubtitle = "subtitle"
)

// Tracker records the state a server left on the client that must be cleared when the session is
// transferred to another server. Open windows are kept by the local storage of the connection.
type Tracker struct {
	titles *strset.Set
}

// NewTracker ...
func NewTracker() *Tracker {
	return &Tracker{titles: strset.New()}
}

func (t *Tracker) handlePacket(pk packet.ClientBound) {
	title, ok := pk.(*packet.Title)
	if !ok {
		return
	}
	if title.Reset || title.Clear {
		t.titles.Clear()
	}
	if title.Title != nil {
		t.titles.Add(trackedTitle)
	}
	if title.Subtitle != nil {
		t.titles.Add(trackedSubtitle)
	}
}

// clear returns the packets that remove the tracked state from the client and forgets it.
func (t *Tracker) clear(s *Session) []packet.ClientBound {
	var packets []packet.ClientBound
	s.translator.Local().Windows(func(id int32) bool {
		packets = append(packets, &packet.CloseWindow{WindowID: uint8(id)})
		return true
	})
	s.translator.Local().ClearWindows()

	if !t.titles.IsEmpty() {
		packets = append(packets, &packet.Title{Reset: true})
		t.titles.Clear()
	}
	return packets
}
