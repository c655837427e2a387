package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Build-time variables
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// SetVersion sets the version info from main
func SetVersion(v, c, d string) {
	Version = v
	Commit = c
	Date = d
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lovegraph [words...]",
	Short: "lovegraph - who loves whom",
	Long: `Reads statements like "Alice loves Bob, Carol and Dave but hates Eve."
from a file or the command line and answers questions about who loves,
likes or hates whom.

After handling its flags lovegraph keeps reading lines from stdin, each
one of -f <file>, -l <statement>, -q <question>, -d or -e. A line
without a flag is taken as a question.

Questions:
  Who loves X     Whom loves X     Whom X hates     X likes     X

Examples:
  lovegraph -f facts.txt -q "Who loves Bob"
  lovegraph -l Alice loves Bob and Carol -e
  lovegraph -f facts.txt -d`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rootOptionsFrom(cmd, args)
		if err != nil {
			return err
		}
		return runRoot(cmd, opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the lovegraph command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lovegraph/config.yml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Read statements from file")

	rootCmd.Flags().StringP("line", "l", "", "Read statements from the given text")
	rootCmd.Flags().StringP("question", "q", "", "Ask about a person: `Who likes X`, `Whom loves X`, `X hates` or `X`")
	rootCmd.Flags().BoolP("describe", "d", false, "List all people the program knows something about")
	rootCmd.Flags().BoolP("exit", "e", false, "Exit instead of reading more input")

	// tell, ask, people (defined in ask.go)
	rootCmd.AddCommand(tellCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(peopleCmd)

	// serve, version (defined in serve.go)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// rootOptions is one round of work for a session: the root flags, or one
// line typed at the prompt.
type rootOptions struct {
	file     string
	line     string
	question string
	describe bool
	exit     bool
}

func rootOptionsFrom(cmd *cobra.Command, args []string) (rootOptions, error) {
	var opts rootOptions
	opts.file, _ = cmd.Flags().GetString("file")
	opts.line, _ = cmd.Flags().GetString("line")
	opts.question, _ = cmd.Flags().GetString("question")
	opts.describe, _ = cmd.Flags().GetBool("describe")
	opts.exit, _ = cmd.Flags().GetBool("exit")

	// trailing words continue -l or -q, so quoting is optional
	if len(args) > 0 {
		rest := strings.Join(args, " ")
		switch {
		case opts.line != "" && opts.question != "":
			return opts, fmt.Errorf("extra words %q are ambiguous with both --line and --question", rest)
		case opts.line != "":
			opts.line += " " + rest
		case opts.question != "":
			opts.question += " " + rest
		default:
			return opts, fmt.Errorf("unexpected arguments %q (use -l for statements or -q for questions)", rest)
		}
	}
	return opts, nil
}
