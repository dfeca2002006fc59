package app

import (
	"fmt"
	"strings"
)

// Application metadata.
const (
	Name        = "playground"
	Description = "Create, run and delete throwaway Python playgrounds."
	Author      = "dshills"
	License     = "MIT"
	Homepage    = "https://github.com/dshills/playground"
)

// Version is the release version, set via ldflags during build.
var Version = "dev"

// VersionText returns the --version output.
func VersionText() string {
	return fmt.Sprintf("%s version %s", Name, Version)
}

// AboutText returns the --about output.
func AboutText() string {
	title := strings.ToUpper(Name[:1]) + Name[1:]
	return fmt.Sprintf(`%s v %s
%s

%s:

Version: %s
Author: %s
Licensed under: %s`, Name, Version, Homepage, title, Version, Author, License)
}
