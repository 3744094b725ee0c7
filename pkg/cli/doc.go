/*
Package cli provides the helpers shared by the fpcheck commands: error types
with exit codes, result formatters (text, JSON, JUnit XML), a progress bar
and signal handling.

Results pick their text rendering by implementing TextWriter, and their
JUnit rendering by implementing JUnitReporter:

	formatter := cli.NewFormatter(cli.FormatJUnit)
	if err := formatter.FormatTo(os.Stdout, results); err != nil {
		return err
	}

Commands that run until interrupted derive their context from the signal
handler:

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
*/
package cli
