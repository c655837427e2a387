package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CanopyHQ/lovegraph/internal/knowledge"
)

const promptHelp = `Commands:
  -f <file>        read statements from file
  -l <statement>   read statements from text
  -q <question>    ask a question (a line without a flag is a question too)
  -d               list all subjects and objects
  -e               exit`

func runRoot(cmd *cobra.Command, opts rootOptions) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	done, err := process(s.base, opts, out)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	if s.cfg.PromptBanner {
		fmt.Fprintln(cmd.ErrOrStderr(), "lovegraph ready. Type -h for help, -e to exit.")
	}
	return runPrompt(s, cmd.InOrStdin(), out, cmd.ErrOrStderr())
}

// runPrompt handles one command per input line until -e or end of input.
// Bad lines are reported and the loop continues.
func runPrompt(s *session, in io.Reader, out, errOut io.Writer) error {
	scanner := knowledge.NewLineScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "-h" || line == "--help" {
			fmt.Fprintln(out, promptHelp)
			continue
		}

		opts, err := parsePromptLine(line)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		done, err := process(s.base, opts, out)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

var valueFlags = map[string]string{
	"-f": "file", "--file": "file",
	"-l": "line", "--line": "line",
	"-q": "question", "--question": "question",
}

var boolFlags = map[string]string{
	"-d": "describe", "--describe": "describe",
	"-e": "exit", "--exit": "exit",
}

// parsePromptLine reads one prompt line: a single flag with the rest of the
// line as its value ("-l Alice loves Bob"), an attached short value
// ("-lAlice loves Bob"), "--line=..." or a bare question.
func parsePromptLine(line string) (rootOptions, error) {
	var opts rootOptions
	line = strings.TrimSpace(line)
	if line == "" {
		return opts, nil
	}
	if !strings.HasPrefix(line, "-") {
		opts.question = line
		return opts, nil
	}

	head, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	if name, value, ok := strings.Cut(head, "="); ok && strings.HasPrefix(name, "--") {
		head = name
		rest = strings.TrimSpace(value + " " + rest)
	}

	if field, ok := boolFlags[head]; ok {
		if rest != "" {
			return opts, fmt.Errorf("flag %s takes no value", head)
		}
		switch field {
		case "describe":
			opts.describe = true
		case "exit":
			opts.exit = true
		}
		return opts, nil
	}

	field, ok := valueFlags[head]
	if !ok && len(head) > 2 && !strings.HasPrefix(head, "--") {
		if f, short := valueFlags[head[:2]]; short {
			field, ok = f, true
			rest = strings.TrimSpace(head[2:] + " " + rest)
			head = head[:2]
		}
	}
	if !ok {
		return opts, fmt.Errorf("unknown flag %s (type -h for help)", head)
	}
	if rest == "" {
		return opts, fmt.Errorf("flag %s needs a value", head)
	}
	switch field {
	case "file":
		opts.file = rest
	case "line":
		opts.line = rest
	case "question":
		opts.question = rest
	}
	return opts, nil
}
