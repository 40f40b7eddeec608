package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkanno/shelfq/internal/cli/appctx"
	"github.com/mkanno/shelfq/internal/render"
)

// rendererFor builds a Renderer from the persistent output flags,
// falling back to the configured default format.
func rendererFor(app *appctx.App, cmd *cobra.Command) (*render.Renderer, error) {
	formatStr := cmd.Flag("output").Value.String()
	if formatStr == "" {
		formatStr = app.Config.Output
	}
	format, err := render.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	porcelain := cmd.Flag("porcelain").Value.String() == "true"
	return render.NewRenderer(cmd.OutOrStdout(), render.Options{
		Format:    format,
		Porcelain: porcelain,
	}), nil
}

// formatOf returns the effective output format name.
func formatOf(app *appctx.App, cmd *cobra.Command) string {
	if f := cmd.Flag("output").Value.String(); f != "" {
		return f
	}
	return app.Config.Output
}

// confirm asks for an explicit 'yes' before a destructive action.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s Type 'yes' to confirm: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

// readAll drains stdin for document-style input.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
