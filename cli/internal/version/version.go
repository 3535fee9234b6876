// Package version reports the version the binary was built from.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BuildVersion is set through -ldflags at release time and overrides the module version.
var BuildVersion = "n/a"

type Info struct {
	Major      string `json:"major,omitempty"`
	Minor      string `json:"minor,omitempty"`
	Patch      string `json:"patch,omitempty"`
	PreRelease string `json:"prerelease,omitempty"`
	Meta       string `json:"meta,omitempty"`
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit,omitempty"`
	BuildDate  string `json:"buildDate,omitempty"`
	GoVersion  string `json:"goVersion"`
	Compiler   string `json:"compiler"`
	Platform   string `json:"platform"`
}

// Current returns the version string of the running binary, BuildVersion if it is set.
func Current() string {
	if BuildVersion != "n/a" {
		return BuildVersion
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return BuildVersion
}

// Get returns the version information of the running binary. Versions that are not
// semantic versions (e.g. "(devel)") are reported as git version only.
func Get() (Info, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}, fmt.Errorf("could not read build info")
	}
	if BuildVersion != "n/a" {
		bi.Main.Version = BuildVersion
	}
	return infoFrom(bi), nil
}

func infoFrom(bi *debug.BuildInfo) Info {
	info := Info{
		GitVersion: bi.Main.Version,
		GoVersion:  bi.GoVersion,
		Compiler:   runtime.Compiler,
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.BuildDate = setting.Value
		}
	}

	v, err := semver.NewVersion(bi.Main.Version)
	if err != nil {
		return info
	}
	info.Major = strconv.FormatUint(v.Major(), 10)
	info.Minor = strconv.FormatUint(v.Minor(), 10)
	info.Patch = strconv.FormatUint(v.Patch(), 10)
	info.PreRelease = v.Prerelease()
	info.Meta = strings.TrimPrefix(v.Metadata(), "+")
	info.GitVersion = v.Original()
	return info
}
