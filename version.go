/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package smartcare

import (
	"fmt"
	"runtime"
	"strings"
)

// ServiceName identifies the service in health reports and logs.
const ServiceName = "smart_care"

// Build metadata, overridable with -ldflags "-X github.com/suparena/smartcare.Version=...".
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the build metadata of the binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Service:   ServiceName,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String renders the multi-line form printed by the version command.
func (v VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "smartcare version %s\n", v.Version)
	fmt.Fprintf(&b, "Git commit: %s\n", v.GitCommit)
	fmt.Fprintf(&b, "Build date: %s\n", v.BuildDate)
	fmt.Fprintf(&b, "Go version: %s\n", v.GoVersion)
	return b.String()
}
