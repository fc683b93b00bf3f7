package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vitaminmoo/penta-wake/internal/ble"
	"github.com/vitaminmoo/penta-wake/internal/cli"
)

func main() {
	var c cli.CLI
	kctx := kong.Parse(&c,
		kong.Name("penta-wake"),
		kong.Description("Wake a Penta GPU server through its BLE power button."),
		kong.UsageOnError(),
		kong.Vars(cli.Vars()),
	)

	err := kctx.Run(&c)
	if errors.Is(err, ble.ErrAdapter) {
		fmt.Fprintln(os.Stderr, ble.AdapterErrorHelpMessage(err))
		os.Exit(1)
	}
	kctx.FatalIfErrorf(err)
}
