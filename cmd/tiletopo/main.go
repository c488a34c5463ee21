// Command tiletopo builds and inspects the relocatable routing graphs of
// FPGA tile types. See internal/cli for the commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexusfab/tiletopo/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	cancel()

	code := cli.ExitCode(err)
	if code != cli.ExitOK && code != cli.ExitInterrupted {
		cli.ReportError(os.Stderr, err)
	}
	os.Exit(code)
}
