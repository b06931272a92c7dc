package main

import (
	"io"
	"os"
	"runtime/debug"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/alecthomas/kong"
)

type Globals struct {
	ConfigLocation string `name:"config-location" short:"c" env:"CONFIG_LOCATION" type:"path" help:"Directory holding config.yaml and secret_config.yaml"`
}

type CLI struct {
	Globals

	Init     InitCmd     `cmd:"" help:"Write a new configuration file from the template"`
	Template TemplateCmd `cmd:"" help:"Print the configuration template"`
	Check    CheckCmd    `cmd:"" help:"Validate the configuration and print a report"`
	Render   RenderCmd   `cmd:"" help:"Print the effective configuration with secrets redacted"`
	Serve    ServeCmd    `cmd:"" help:"Start the admin server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// runContext is bound to the Run method of every command.
type runContext struct {
	globals *Globals
	stdout  io.Writer
}

func (rc *runContext) configHandler() *config.ConfigHandler {
	return config.NewConfigHandler(config.WithConfigLocation(rc.globals.ConfigLocation))
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if ok && buildInfo != nil {
		return buildInfo.Main.Version
	}
	return ""
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("marketplace"),
		kong.Description("Configuration tooling and admin server of the code marketplace"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli, parserOptions()...)
	err := ctx.Run(&runContext{globals: &cli.Globals, stdout: os.Stdout})
	ctx.FatalIfErrorf(err)
}
