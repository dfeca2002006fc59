package playground

import (
	"path/filepath"
	"runtime"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Reserved names inside a playground root.
const (
	VenvDir          = ".venv"
	RequirementsDir  = "requirements"
	RequirementsFile = "requirements.in"
)

// PythonPath returns the interpreter inside the environment at venvDir
// for the running platform.
func PythonPath(venvDir string) string {
	return pythonPath(venvDir, runtime.GOOS)
}

func pythonPath(venvDir, goos string) string {
	if goos == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}

// Command returns the argument vector that runs a playground.
func Command(s Settings) []string {
	argv := make([]string, 0, len(s.Args)+3)
	argv = append(argv, s.Python, "-m", s.Module)
	return append(argv, s.Args...)
}

// CommandLine renders Command as a single shell-quoted line for display.
func CommandLine(s Settings) string {
	argv := Command(s)
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Arguments that cannot be quoted for bash are shown verbatim.
			q = arg
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
