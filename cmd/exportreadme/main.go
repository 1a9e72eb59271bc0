package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/exportreadme/cmd/exportreadme/commands"
	foundationerrors "git.home.luguber.info/inful/exportreadme/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	parser, err := commands.NewParser(cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(&commands.Global{}, cli)
	stop()
	foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
