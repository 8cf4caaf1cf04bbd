// joykbd-cli is an interactive diagnostic tool: inspect devices, dump
// raw events, evaluate the stick response curve with live-tunable
// constants.
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	evdev "github.com/holoplot/go-evdev"
	"github.com/juju/errors"

	"github.com/coolreader18/joykbd/hardware/joystick"
	"github.com/coolreader18/joykbd/helpers/cli"
	"github.com/coolreader18/joykbd/internal/keymap"
	"github.com/coolreader18/joykbd/internal/state"
	"github.com/coolreader18/joykbd/internal/stick"
	"github.com/coolreader18/joykbd/log2"
)

const usage = `syntax: commands separated by whitespace
(main)
- list         show /dev/input devices
- watch=PATH   dump raw events from device, watchn=N events (default 10)
- curve=RAW    evaluate the stick response for a raw sample
- table        print the physical to virtual translation table

(meta)
- speed=X      set curve speed for this session
- threshold=N  set drift threshold
- adjust-x=N   set X center bias
- adjust-y=N   set Y center bias
- log=yes|no   debug logging
- help
- exit
`

var log = log2.NewStderr(log2.LInfo)

type session struct {
	config state.Config
	watchN uint64
}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	speed := cmdline.Float64("speed", state.DefaultSpeed, "")
	threshold := cmdline.Uint("drift-threshold", state.DefaultDriftThreshold, "")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	s := &session{
		config: state.Config{Speed: *speed, DriftThreshold: uint32(*threshold)},
		watchN: 10,
	}
	s.config.Normalize()

	cli.MainLoop("joykbd-cli", s.executor, completer)
}

func completer(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "list", Description: "show /dev/input devices"},
		{Text: "watch=", Description: "dump raw events from device path"},
		{Text: "watchn=", Description: "how many events watch dumps"},
		{Text: "curve=", Description: "evaluate stick response for raw sample"},
		{Text: "table", Description: "print translation table"},
		{Text: "speed=", Description: "set curve speed"},
		{Text: "threshold=", Description: "set drift threshold"},
		{Text: "adjust-x=", Description: "set X center bias"},
		{Text: "adjust-y=", Description: "set Y center bias"},
		{Text: "log=", Description: "log=yes|no debug logging"},
		{Text: "help", Description: "show usage"},
		{Text: "exit", Description: "quit"},
	}
	return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
}

func (s *session) executor(line string) {
	for _, word := range strings.Fields(line) {
		if err := s.command(word); err != nil {
			log.Errorf(errors.ErrorStack(err))
		}
	}
}

func (s *session) command(word string) error {
	switch {
	case word == "help":
		log.Infof(usage)
		return nil
	case word == "exit":
		os.Exit(0)
		return nil
	case word == "list":
		return s.list()
	case word == "table":
		log.Infof("translation table:\n%s", keymap.FormatTable())
		return nil
	case word == "log=yes":
		log.SetLevel(log2.LDebug)
		return nil
	case word == "log=no":
		log.SetLevel(log2.LInfo)
		return nil
	case strings.HasPrefix(word, "watch="):
		return s.watch(word[6:])
	case strings.HasPrefix(word, "watchn="):
		n, err := strconv.ParseUint(word[7:], 10, 16)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		s.watchN = n
		return nil
	case strings.HasPrefix(word, "curve="):
		raw, err := strconv.ParseInt(word[6:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		s.curve(int32(raw))
		return nil
	case strings.HasPrefix(word, "speed="):
		f, err := strconv.ParseFloat(word[6:], 64)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		s.config.Speed = f
		return s.config.Validate()
	case strings.HasPrefix(word, "threshold="):
		n, err := strconv.ParseUint(word[10:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		s.config.DriftThreshold = uint32(n)
		return nil
	case strings.HasPrefix(word, "adjust-x="):
		n, err := strconv.ParseInt(word[9:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		s.config.AdjustX = int32(n)
		return nil
	case strings.HasPrefix(word, "adjust-y="):
		n, err := strconv.ParseInt(word[9:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		s.config.AdjustY = int32(n)
		return nil
	case word == "":
		return nil
	default:
		return errors.Errorf("invalid command: '%s'", word)
	}
}

func (s *session) list() error {
	paths, err := joystick.List()
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Infof("%s\t%s", p.Path, p.Name)
	}
	return nil
}

func (s *session) curve(raw int32) {
	c := s.config.StickConstants()
	log.Infof("curve raw=%d x=%d y=%d (speed=%g threshold=%d adjust=%d,%d)",
		raw, c.Map(stick.AxisX, raw), c.Map(stick.AxisY, raw),
		s.config.Speed, s.config.DriftThreshold, s.config.AdjustX, s.config.AdjustY)
}

func (s *session) watch(path string) error {
	dev, err := joystick.Open(path)
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Infof("watch %s n=%d", dev.String(), s.watchN)
	for i := uint64(0); i < s.watchN; i++ {
		ev, err := dev.ReadOne()
		if err != nil {
			return err
		}
		log.Infof("%s %s value=%d",
			evdev.TypeName(ev.Type), evdev.CodeName(ev.Type, ev.Code), ev.Value)
	}
	return nil
}
