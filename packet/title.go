package packet

import (
	"fmt"

	"github.com/cooldogedev/prism/chat"
	"github.com/cooldogedev/prism/serializer"
	"github.com/cooldogedev/prism/version"
)

// TitleTimes holds the durations of a title in ticks.
type TitleTimes struct {
	FadeIn  int32
	Stay    int32
	FadeOut int32
}

// Title shows a title, subtitle or action bar message to the client. Every field that is set is
// written as its own wire packet: times first, then the subtitle, then the title, so that the title
// is displayed with both already in place.
type Title struct {
	Base
	Title     *chat.Component
	Subtitle  *chat.Component
	ActionBar *chat.Component
	Times     *TitleTimes
	// Clear hides the title currently displayed.
	Clear bool
	// Reset hides the title and restores the default times.
	Reset bool
}

const (
	titleActionTitle = iota
	titleActionSubtitle
	titleActionActionBar
	titleActionTimes
	titleActionClear
	titleActionReset
)

// titleAction returns the wire action of v. Clients before 1.11 know no action bar action, so every
// action after the subtitle is shifted down by one for them.
func titleAction(action int32, v version.Version) int32 {
	if action > titleActionSubtitle && v.Before(version.Minecraft_1_11) {
		return action - 1
	}
	return action
}

func titleActionFromWire(action int32, v version.Version) int32 {
	if action > titleActionSubtitle && v.Before(version.Minecraft_1_11) {
		return action + 1
	}
	return action
}

// Kind ...
func (*Title) Kind() Kind {
	return KindTitle
}

// ReadFromServerData reads a single title action into the field it sets.
func (pk *Title) ReadFromServerData(r *serializer.Reader) error {
	v := r.Version()
	if v.Before(version.Minecraft_1_8) {
		return fmt.Errorf("title packet does not exist in %v", v)
	}

	var action int32
	r.Varint32(&action)
	switch titleActionFromWire(action, v) {
	case titleActionTitle:
		pk.Title = new(chat.Component)
		r.Chat(pk.Title)
	case titleActionSubtitle:
		pk.Subtitle = new(chat.Component)
		r.Chat(pk.Subtitle)
	case titleActionActionBar:
		pk.ActionBar = new(chat.Component)
		r.Chat(pk.ActionBar)
	case titleActionTimes:
		pk.Times = new(TitleTimes)
		r.Int32(&pk.Times.FadeIn)
		r.Int32(&pk.Times.Stay)
		r.Int32(&pk.Times.FadeOut)
	case titleActionClear:
		pk.Clear = true
	case titleActionReset:
		pk.Reset = true
	default:
		if r.Err() == nil {
			return fmt.Errorf("unknown title action %d", action)
		}
	}
	return r.Err()
}

// ToData writes one title packet per field set from 1.8 on. Older clients have no titles and receive
// the title and subtitle as system chat messages, and the action bar as a message above the hotbar,
// which is dropped for clients that cannot display it.
func (pk *Title) ToData(v version.Version) ([]*serializer.PacketData, error) {
	if _, ok := ID(KindTitle, v); !ok {
		var messages []*Chat
		if pk.Title != nil {
			messages = append(messages, &Chat{Base: pk.Base, Message: *pk.Title, Position: PositionSystem})
		}
		if pk.Subtitle != nil {
			messages = append(messages, &Chat{Base: pk.Base, Message: *pk.Subtitle, Position: PositionSystem})
		}
		if pk.ActionBar != nil {
			messages = append(messages, &Chat{Base: pk.Base, Message: *pk.ActionBar, Position: PositionHotbar})
		}
		return collect(v, messages...)
	}

	var parts []ClientBound
	if pk.Reset {
		parts = append(parts, &titlePart{Base: pk.Base, action: titleActionReset})
	}
	if pk.Clear {
		parts = append(parts, &titlePart{Base: pk.Base, action: titleActionClear})
	}
	if pk.Times != nil {
		parts = append(parts, &titlePart{Base: pk.Base, action: titleActionTimes, times: *pk.Times})
	}
	if pk.Subtitle != nil {
		parts = append(parts, &titlePart{Base: pk.Base, action: titleActionSubtitle, text: *pk.Subtitle})
	}
	if pk.Title != nil {
		parts = append(parts, &titlePart{Base: pk.Base, action: titleActionTitle, text: *pk.Title})
	}
	if pk.ActionBar != nil {
		if v.Before(version.Minecraft_1_11) {
			parts = append(parts, &Chat{Base: pk.Base, Message: *pk.ActionBar, Position: PositionHotbar})
		} else {
			parts = append(parts, &titlePart{Base: pk.Base, action: titleActionActionBar, text: *pk.ActionBar})
		}
	}
	return collect(v, parts...)
}

// titlePart is a single title action.
type titlePart struct {
	Base
	action int32
	text   chat.Component
	times  TitleTimes
}

// Kind ...
func (*titlePart) Kind() Kind {
	return KindTitle
}

// ReadFromServerData ...
func (*titlePart) ReadFromServerData(*serializer.Reader) error {
	return fmt.Errorf("title parts are never read")
}

// ToData ...
func (pk *titlePart) ToData(v version.Version) ([]*serializer.PacketData, error) {
	return pk.single(KindTitle, v, func(io serializer.IO) {
		action := titleAction(pk.action, v)
		io.Varint32(&action)
		switch pk.action {
		case titleActionTitle, titleActionSubtitle, titleActionActionBar:
			io.Chat(&pk.text)
		case titleActionTimes:
			io.Int32(&pk.times.FadeIn)
			io.Int32(&pk.times.Stay)
			io.Int32(&pk.times.FadeOut)
		}
	})
}

// collect encodes every packet for v and concatenates the results. If any packet fails, the data
// already built is released.
func collect[T ClientBound](v version.Version, packets ...T) ([]*serializer.PacketData, error) {
	var data []*serializer.PacketData
	for _, pk := range packets {
		res, err := pk.ToData(v)
		if err != nil {
			serializer.ReleaseAll(data)
			return nil, err
		}
		data = append(data, res...)
	}
	return data, nil
}
