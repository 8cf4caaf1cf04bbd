package keymap

import (
	"strings"
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolreader18/joykbd/internal/stick"
)

func testConstants() stick.Constants {
	return stick.FromSpeed(20.0, 2000, 0, 0)
}

func TestTranslateKeys(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		physical evdev.EvCode
		virtual  evdev.EvCode
	}{
		{"lower-trigger-left", evdev.BTN_TL2, evdev.BTN_LEFT},
		{"lower-trigger-right", evdev.BTN_TR2, evdev.BTN_LEFT},
		{"upper-trigger-left", evdev.BTN_TL, evdev.BTN_RIGHT},
		{"upper-trigger-right", evdev.BTN_TR, evdev.BTN_RIGHT},
		{"stick-click-left", evdev.BTN_THUMBL, evdev.BTN_MIDDLE},
		{"stick-click-right", evdev.BTN_THUMBR, evdev.BTN_MIDDLE},
		{"east", evdev.BTN_EAST, evdev.KEY_RIGHT},
		{"south", evdev.BTN_SOUTH, evdev.KEY_DOWN},
		{"north", evdev.BTN_NORTH, evdev.KEY_UP},
		{"west", evdev.BTN_WEST, evdev.KEY_LEFT},
	}
	c := testConstants()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			// press, release and autorepeat values pass through verbatim
			for _, value := range []int32{1, 0, 2} {
				in := &evdev.InputEvent{Type: evdev.EV_KEY, Code: tc.physical, Value: value}
				out := Translate(in, &c)
				require.NotNil(t, out)
				assert.EqualValues(t, evdev.EV_KEY, out.Type)
				assert.Equal(t, tc.virtual, out.Code)
				assert.Equal(t, value, out.Value)
			}
		})
	}
}

func TestTranslateAxes(t *testing.T) {
	t.Parallel()

	c := testConstants()
	cases := []struct {
		name     string
		physical evdev.EvCode
		rel      evdev.EvCode
		raw      int32
		value    int32
	}{
		{"x-primary-full", evdev.ABS_X, evdev.REL_X, 30000, 20},
		{"x-secondary-full", evdev.ABS_RX, evdev.REL_X, 30000, 20},
		{"y-primary-center", evdev.ABS_Y, evdev.REL_Y, 0, 0},
		{"y-secondary-negative", evdev.ABS_RY, evdev.REL_Y, -30000, -20},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			in := &evdev.InputEvent{Type: evdev.EV_ABS, Code: tc.physical, Value: tc.raw}
			out := Translate(in, &c)
			require.NotNil(t, out)
			assert.EqualValues(t, evdev.EV_REL, out.Type)
			assert.Equal(t, tc.rel, out.Code)
			assert.Equal(t, tc.value, out.Value)
		})
	}
}

func TestTranslateDrops(t *testing.T) {
	t.Parallel()

	c := testConstants()
	cases := []struct {
		name string
		ev   evdev.InputEvent
	}{
		{"sync", evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}},
		{"misc", evdev.InputEvent{Type: evdev.EV_MSC, Code: evdev.MSC_SCAN, Value: 42}},
		{"unmapped-key", evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_SELECT, Value: 1}},
		{"unmapped-axis", evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_Z, Value: 100}},
		{"rel-in", evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_X, Value: 3}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, Translate(&tc.ev, &c))
		})
	}
}

func TestTranslateDeterministic(t *testing.T) {
	t.Parallel()

	c := testConstants()
	in := &evdev.InputEvent{Type: evdev.EV_ABS, Code: evdev.ABS_X, Value: 17000}
	first := Translate(in, &c)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		out := Translate(in, &c)
		require.NotNil(t, out)
		assert.Equal(t, *first, *out)
	}
}

func TestVirtualCapabilities(t *testing.T) {
	t.Parallel()

	assert.Len(t, VirtualKeys(), 7)
	assert.Equal(t, []evdev.EvCode{evdev.REL_X, evdev.REL_Y}, VirtualAxes())
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	s := FormatTable()
	assert.Equal(t, len(keyTable)+len(axisTable), strings.Count(s, "\n"))
	assert.Contains(t, s, "BTN_LEFT")
	assert.Contains(t, s, "REL_Y")
}
