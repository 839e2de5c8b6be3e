package build

import (
	"flag"
	"strings"
)

var (
	gitCommitFlag = flag.String("git-commit", "", "Overrides git commit hash embedded into executables")
	gitDateFlag   = flag.String("git-date", "", "Overrides git date embedded into executables")
)

// Environment contains the git metadata stamped into built binaries.
type Environment struct {
	Commit string
	Date   string
}

// Env returns the build environment, from flags when given and from
// the local git checkout otherwise.
func Env() *Environment {
	env := &Environment{
		Commit: *gitCommitFlag,
		Date:   *gitDateFlag,
	}
	if env.Commit == "" {
		if head := readGitFile("HEAD"); strings.HasPrefix(head, "ref: ") {
			env.Commit = readGitFile(strings.TrimPrefix(head, "ref: "))
		} else {
			env.Commit = head
		}
	}
	if env.Date == "" && env.Commit != "" {
		env.Date = RunGit("log", "-1", "--format=%cd", "--date=format:%Y%m%d", env.Commit)
	}
	return env
}
