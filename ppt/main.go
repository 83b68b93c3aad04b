package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/papertrade/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	// Shell completion. This returns early when the shell is asking for
	// completions, and installs/uninstalls with -install/-uninstall.
	sub := map[string]*complete.Command{}
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{Flags: map[string]complete.Predictor{}}
	}
	sub["topic"].Args = predict.Something
	completion := &complete.Command{Sub: sub}
	completion.Complete("ppt")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
