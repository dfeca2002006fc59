package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// CommandKind names a dispatchable command.
type CommandKind string

// Commands understood by Dispatch.
const (
	CmdNew          CommandKind = "new"
	CmdDelete       CommandKind = "delete"
	CmdRun          CommandKind = "run"
	CmdPreview      CommandKind = "preview"
	CmdConfigRead   CommandKind = "config read"
	CmdConfigAdd    CommandKind = "config add"
	CmdConfigDelete CommandKind = "config delete"
	CmdConfigEdit   CommandKind = "config edit"
	CmdConfigSet    CommandKind = "config set"
	CmdConfigMerge  CommandKind = "config merge"
	CmdConfigInit   CommandKind = "config init"
)

// Command is one parsed invocation.
type Command struct {
	Kind CommandKind

	// Type is the playground type for new and preview, or the type name
	// for config add.
	Type string
	// Name is the playground name.
	Name string
	// Key is a registry key path for config read, delete, edit and set.
	Key string
	// Value is a JSON document for config add, edit and set.
	Value string
	// File is an import document for config delete and merge.
	File string
	// Include lists extra packages for new.
	Include []string
	// Vars holds template variables for new and preview.
	Vars map[string]string
	// Force lets config init replace an existing registry.
	Force bool
}

// listFlag collects repeated or comma-separated values.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// varsFlag collects KEY=VALUE pairs.
type varsFlag map[string]string

func (v varsFlag) String() string {
	pairs := make([]string, 0, len(v))
	for k, val := range v {
		pairs = append(pairs, k+"="+val)
	}
	return strings.Join(pairs, ",")
}

func (v varsFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected KEY=VALUE, got %q", s)
	}
	v[strings.TrimSpace(key)] = value
	return nil
}

// ParseCommand parses the arguments that follow the global flags.
// Flag errors and usage text are written to out.
func ParseCommand(args []string, out io.Writer) (Command, error) {
	if len(args) == 0 {
		return Command{}, usageErrorf("", "no command given")
	}

	name, rest := args[0], args[1:]
	switch name {
	case "new":
		return parseNew(rest, out)
	case "delete", "run":
		pos, err := parsePositional(newFlagSet(name, out), rest, 0)
		if err != nil {
			return Command{}, err
		}
		if len(pos) != 1 {
			return Command{}, usageErrorf(name, "expected a playground name")
		}
		return Command{Kind: CommandKind(name), Name: pos[0]}, nil
	case "preview":
		return parsePreview(rest, out)
	case "config":
		return parseConfig(rest, out)
	default:
		return Command{}, usageErrorf("", "unknown command %q", name)
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// parsePositional parses fs allowing flags and positional arguments to be
// interleaved, and returns the positional arguments. Arguments after "--",
// or after the first verbatimAfter positionals when verbatimAfter > 0, are
// positional even when they start with "-".
func parsePositional(fs *flag.FlagSet, args []string, verbatimAfter int) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, ErrHelp
			}
			return nil, &UsageError{Command: fs.Name(), Msg: err.Error()}
		}
		rest := fs.Args()
		if n := len(args) - len(rest); n > 0 && args[n-1] == "--" {
			return append(pos, rest...), nil
		}
		if len(rest) == 0 {
			return pos, nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
		if verbatimAfter > 0 && len(pos) >= verbatimAfter {
			return append(pos, args...), nil
		}
	}
}

func parseNew(args []string, out io.Writer) (Command, error) {
	cmd := Command{Kind: CmdNew, Vars: map[string]string{}}
	include := listFlag{}

	fs := newFlagSet("new", out)
	fs.StringVar(&cmd.Name, "name", "", "The name of the playground to create")
	fs.StringVar(&cmd.Name, "n", "", "The name of the playground to create (shorthand)")
	fs.Var(&include, "include", "Package to install with pip (repeatable)")
	fs.Var(&include, "i", "Package to install with pip (shorthand)")
	fs.Var(varsFlag(cmd.Vars), "var", "Template variable as KEY=VALUE (repeatable)")

	pos, err := parsePositional(fs, args, 0)
	if err != nil {
		return Command{}, err
	}
	if len(pos) != 1 {
		return Command{}, usageErrorf("new", "expected a playground type")
	}
	cmd.Type = pos[0]
	cmd.Include = include
	return cmd, nil
}

func parsePreview(args []string, out io.Writer) (Command, error) {
	cmd := Command{Kind: CmdPreview, Vars: map[string]string{}}

	fs := newFlagSet("preview", out)
	fs.StringVar(&cmd.Name, "name", "", "Playground name used for ${name} (defaults to the type)")
	fs.StringVar(&cmd.Name, "n", "", "Playground name (shorthand)")
	fs.Var(varsFlag(cmd.Vars), "var", "Template variable as KEY=VALUE (repeatable)")

	pos, err := parsePositional(fs, args, 0)
	if err != nil {
		return Command{}, err
	}
	if len(pos) != 1 {
		return Command{}, usageErrorf("preview", "expected a playground type")
	}
	cmd.Type = pos[0]
	if cmd.Name == "" {
		cmd.Name = cmd.Type
	}
	return cmd, nil
}

func parseConfig(args []string, out io.Writer) (Command, error) {
	// Bare "config" and "config -k KEY" read the registry.
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		cmd := Command{Kind: CmdConfigRead}
		fs := newFlagSet("config", out)
		fs.StringVar(&cmd.Key, "key", "", "The config key to inspect ({type}.{key})")
		fs.StringVar(&cmd.Key, "k", "", "The config key to inspect (shorthand)")
		pos, err := parsePositional(fs, args, 0)
		if err != nil {
			return Command{}, err
		}
		if len(pos) > 0 {
			return Command{}, usageErrorf("config", "unexpected argument %q", pos[0])
		}
		return cmd, nil
	}

	sub, rest := args[0], args[1:]
	name := "config " + sub
	fs := newFlagSet(name, out)
	cmd := Command{Kind: CommandKind(name)}

	switch cmd.Kind {
	case CmdConfigDelete:
		fs.StringVar(&cmd.File, "file", "", "Delete every type named in this document")
		fs.StringVar(&cmd.File, "f", "", "Import document (shorthand)")
	case CmdConfigInit:
		fs.BoolVar(&cmd.Force, "force", false, "Replace an existing configuration")
	case CmdConfigRead, CmdConfigAdd, CmdConfigEdit, CmdConfigSet, CmdConfigMerge:
	default:
		return Command{}, usageErrorf("config", "unknown subcommand %q", sub)
	}

	// JSON values such as -1 follow the key verbatim.
	verbatimAfter := 0
	switch cmd.Kind {
	case CmdConfigAdd, CmdConfigEdit, CmdConfigSet:
		verbatimAfter = 1
	}
	pos, err := parsePositional(fs, rest, verbatimAfter)
	if err != nil {
		return Command{}, err
	}

	want := map[CommandKind]int{
		CmdConfigRead:   1,
		CmdConfigAdd:    2,
		CmdConfigDelete: 1,
		CmdConfigEdit:   2,
		CmdConfigSet:    2,
		CmdConfigMerge:  1,
		CmdConfigInit:   0,
	}[cmd.Kind]
	if cmd.Kind == CmdConfigDelete && cmd.File != "" {
		want = 0
	}
	if len(pos) != want {
		return Command{}, usageErrorf(name, "expected %d argument(s), got %d", want, len(pos))
	}

	switch cmd.Kind {
	case CmdConfigAdd:
		cmd.Type, cmd.Value = pos[0], pos[1]
	case CmdConfigEdit, CmdConfigSet:
		cmd.Key, cmd.Value = pos[0], pos[1]
	case CmdConfigRead:
		cmd.Key = pos[0]
	case CmdConfigDelete:
		if cmd.File == "" {
			cmd.Key = pos[0]
		}
	case CmdConfigMerge:
		cmd.File = pos[0]
	}
	return cmd, nil
}
