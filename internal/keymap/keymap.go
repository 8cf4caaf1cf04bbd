// Package keymap is the fixed translation from gamepad events to
// virtual pointer/arrow-key events.
package keymap

import (
	"fmt"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"

	"github.com/coolreader18/joykbd/internal/stick"
)

// keyTable maps physical buttons to virtual pointer buttons and arrow
// keys. Both triggers and both stick clicks alias to one virtual
// button so either hand reaches every mouse button.
var keyTable = map[evdev.EvCode]evdev.EvCode{
	evdev.BTN_TL2:    evdev.BTN_LEFT,
	evdev.BTN_TR2:    evdev.BTN_LEFT,
	evdev.BTN_TL:     evdev.BTN_RIGHT,
	evdev.BTN_TR:     evdev.BTN_RIGHT,
	evdev.BTN_THUMBL: evdev.BTN_MIDDLE,
	evdev.BTN_THUMBR: evdev.BTN_MIDDLE,
	evdev.BTN_EAST:   evdev.KEY_RIGHT,
	evdev.BTN_SOUTH:  evdev.KEY_DOWN,
	evdev.BTN_NORTH:  evdev.KEY_UP,
	evdev.BTN_WEST:   evdev.KEY_LEFT,
}

// axisTable collapses primary and secondary reports of each stick axis
// to one relative pointer axis.
var axisTable = map[evdev.EvCode]struct {
	rel  evdev.EvCode
	axis stick.Axis
}{
	evdev.ABS_X:  {evdev.REL_X, stick.AxisX},
	evdev.ABS_RX: {evdev.REL_X, stick.AxisX},
	evdev.ABS_Y:  {evdev.REL_Y, stick.AxisY},
	evdev.ABS_RY: {evdev.REL_Y, stick.AxisY},
}

// Translate returns the virtual event for one physical event, nil when
// the event has no mapping. Key values pass through verbatim, so
// press/release/autorepeat all work without tracking state here.
// Pure function, no side effects.
func Translate(ev *evdev.InputEvent, c *stick.Constants) *evdev.InputEvent {
	switch ev.Type {
	case evdev.EV_KEY:
		if out, ok := keyTable[ev.Code]; ok {
			return &evdev.InputEvent{Type: evdev.EV_KEY, Code: out, Value: ev.Value}
		}
	case evdev.EV_ABS:
		if out, ok := axisTable[ev.Code]; ok {
			return &evdev.InputEvent{Type: evdev.EV_REL, Code: out.rel, Value: c.Map(out.axis, ev.Value)}
		}
	}
	return nil
}

// VirtualKeys lists every EV_KEY code Translate may produce, for the
// output device capability declaration.
func VirtualKeys() []evdev.EvCode {
	return []evdev.EvCode{
		evdev.BTN_LEFT,
		evdev.BTN_RIGHT,
		evdev.BTN_MIDDLE,
		evdev.KEY_UP,
		evdev.KEY_RIGHT,
		evdev.KEY_DOWN,
		evdev.KEY_LEFT,
	}
}

// VirtualAxes lists every EV_REL code Translate may produce.
func VirtualAxes() []evdev.EvCode {
	return []evdev.EvCode{evdev.REL_X, evdev.REL_Y}
}

// FormatTable renders the full mapping, one "physical -> virtual" line
// per entry, ordered by physical code.
func FormatTable() string {
	keys := make([]evdev.EvCode, 0, len(keyTable))
	for code := range keyTable {
		keys = append(keys, code)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	axes := make([]evdev.EvCode, 0, len(axisTable))
	for code := range axisTable {
		axes = append(axes, code)
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i] < axes[j] })

	sb := strings.Builder{}
	for _, code := range keys {
		fmt.Fprintf(&sb, "%s -> %s\n",
			evdev.CodeName(evdev.EV_KEY, code),
			evdev.CodeName(evdev.EV_KEY, keyTable[code]))
	}
	for _, code := range axes {
		fmt.Fprintf(&sb, "%s -> %s (response curve)\n",
			evdev.CodeName(evdev.EV_ABS, code),
			evdev.CodeName(evdev.EV_REL, axisTable[code].rel))
	}
	return sb.String()
}
