package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Jidetireni/gym-manager/factory"
	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/pkg/logger"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string) error
}

type App struct {
	Config  *config.Config
	Factory *factory.Factory
	out     io.Writer
	json    bool
}

func NewApp(out io.Writer) (*App, func(), error) {
	cfg := config.New()
	return newApp(cfg, logger.New(*cfg), out)
}

func newApp(cfg *config.Config, log *logger.Logger, out io.Writer) (*App, func(), error) {
	f, cleanup, err := factory.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return &App{
		Config:  cfg,
		Factory: f,
		out:     out,
	}, cleanup, nil
}

func (a *App) commands() []command {
	return []command{
		{name: "members", summary: "list|add|edit|delete|renew members", run: a.members},
		{name: "visits", summary: "record|list|delete visits", run: a.visits},
		{name: "dashboard", summary: "show dashboard metrics", run: a.dashboard},
		{name: "alerts", summary: "show membership expiry alerts", run: a.alerts},
		{name: "activity", summary: "show today's visits and registrations", run: a.activity},
		{name: "report", summary: "print an individual member report", run: a.report},
		{name: "payments", summary: "list payments in a date range", run: a.payments},
		{name: "remind", summary: "e-mail members whose membership is expiring", run: a.remind},
	}
}

// Run parses global flags and dispatches to a command.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gym", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.BoolVar(&a.json, "json", false, "print results as JSON")
	fs.Usage = a.usage
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return usageError("missing command")
	}

	for _, cmd := range a.commands() {
		if cmd.name == rest[0] {
			return cmd.run(ctx, rest[1:])
		}
	}

	return usageError(fmt.Sprintf("unknown command %q", rest[0]))
}

func (a *App) usage() {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nUsage: gym [-json] <command> [flags]\n\nCommands:\n", a.Config.Gym.Name)
	for _, cmd := range a.commands() {
		fmt.Fprintf(&b, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprint(a.out, b.String())
}

// subcommand dispatches "<group> <action>" commands such as "members add".
func subcommand(ctx context.Context, group string, args []string, actions map[string]func(context.Context, []string) error) error {
	if len(args) == 0 {
		return usageError(fmt.Sprintf("%s: missing action", group))
	}
	action, ok := actions[args[0]]
	if !ok {
		return usageError(fmt.Sprintf("%s: unknown action %q", group, args[0]))
	}
	return action(ctx, args[1:])
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if fs.NArg() > 0 {
		return usageError(fmt.Sprintf("%s: unexpected arguments %v", fs.Name(), fs.Args()))
	}
	return nil
}
