// Command fdnverb renders and applies an eight-channel feedback delay
// network reverb offline.
//
// Usage:
//
//	fdnverb render [flags] <out.wav>
//	fdnverb process [flags] <in.wav> <out.wav>
//
// Examples:
//
//	fdnverb render --room-size 80 --rt60 2.5 ir.wav
//	fdnverb process --dry 1 --wet 0.3 --tail 2 voice.wav voice-hall.wav
package main

import (
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version information"`

	Render  RenderCmd  `cmd:"" help:"Render the impulse response to a WAV file and print its metrics"`
	Process ProcessCmd `cmd:"" help:"Run a mono or stereo WAV file through the reverb"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("fdnverb"),
		kong.Description("Feedback delay network reverb renderer"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	if err := ctx.Run(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
