package cmd

import (
	"fmt"

	"github.com/CanopyHQ/lovegraph/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"mcp"},
	Short:   "Start MCP server",
	Long: `Start the MCP server using stdio transport.

The server communicates via JSON-RPC over stdin/stdout and exposes the
tools tell, ask and people. Statements loaded with --file are available
from the start.

Examples:
  lovegraph serve
  lovegraph serve -f facts.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		return runServe(cmd, file)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lovegraph %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func runServe(cmd *cobra.Command, file string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := process(s.base, rootOptions{file: file}, cmd.OutOrStdout()); err != nil {
		return err
	}

	mcp.Version = Version
	server := mcp.NewServer(s.base, cmd.InOrStdin(), cmd.OutOrStdout(), s.logger)
	return server.Start()
}
