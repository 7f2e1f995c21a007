// Package version provides engine version parsing and comparison, and CLI
// build-info wiring via runtime/debug.
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Version is a semantic (major.minor.patch) engine version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// New creates a new Version.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}
	return 0
}

func (v Version) LessThan(other Version) bool           { return v.Compare(other) < 0 }
func (v Version) LessThanOrEqual(other Version) bool    { return v.Compare(other) <= 0 }
func (v Version) GreaterThan(other Version) bool        { return v.Compare(other) > 0 }
func (v Version) GreaterThanOrEqual(other Version) bool { return v.Compare(other) >= 0 }
func (v Version) Equal(other Version) bool              { return v.Compare(other) == 0 }
func (v Version) IsZero() bool                          { return v.Major == 0 && v.Minor == 0 && v.Patch == 0 }

// Parse parses a version string like "0.8.20" or "0.8".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version format: %s", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %s", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %s", parts[1])
	}

	patch := 0
	if len(parts) == 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil {
			return Version{}, fmt.Errorf("invalid patch version: %s", parts[2])
		}
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// MustParse parses a version string and panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// BuildInfo returns a human-readable build string sourced from the module's
// embedded build info (module version, vcs revision, dirty flag), falling
// back to "(devel)" when none is available (e.g. `go run`).
func BuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}

	version := info.Main.Version
	if version == "" {
		version = "(devel)"
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision == "" {
		return version
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if dirty {
		revision += "-dirty"
	}
	return fmt.Sprintf("%s (%s)", version, revision)
}
