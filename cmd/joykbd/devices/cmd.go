// List /dev/input nodes and exit.
package devices

import (
	"context"
	"fmt"

	"github.com/coolreader18/joykbd/cmd/joykbd/subcmd"
	"github.com/coolreader18/joykbd/hardware/joystick"
	"github.com/coolreader18/joykbd/internal/state"
)

var Mod = subcmd.Mod{Name: "devices", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	paths, err := joystick.List()
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("%s\t%s\n", p.Path, p.Name)
	}
	return nil
}
