package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Args is the argv vector, Args[0] being the executable.
	Args []string

	// Env is merged over the inherited environment.
	Env map[string]string
}

// String renders the command line for log output.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}
