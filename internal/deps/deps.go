package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of a dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// Tool is an external program hyprcolor shells out to.
type Tool struct {
	Name        string
	VersionArgs []string
	Purpose     string
	Package     string
	Required    bool
}

// Tools lists every external program, required ones first.
var Tools = []Tool{
	{Name: "pw-record", VersionArgs: []string{"--version"}, Purpose: "microphone capture", Package: "pipewire", Required: true},
	{Name: "pw-cli", VersionArgs: []string{"--version"}, Purpose: "microphone check", Package: "pipewire", Required: true},
	{Name: "notify-send", VersionArgs: []string{"--version"}, Purpose: "desktop notifications", Package: "libnotify"},
	{Name: "wl-copy", VersionArgs: []string{"--version"}, Purpose: "clipboard (wl-copy backend)", Package: "wl-clipboard"},
}

// Check looks the tool up on PATH and asks it for a version line.
func Check(tool Tool) Status {
	path, err := exec.LookPath(tool.Name)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	if len(tool.VersionArgs) == 0 {
		return status
	}
	output, err := exec.Command(path, tool.VersionArgs...).Output()
	if err == nil {
		status.Version = firstLine(string(output))
	}
	return status
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

// Result pairs a tool with its status.
type Result struct {
	Tool   Tool
	Status Status
}

// CheckAll checks every tool in Tools.
func CheckAll() []Result {
	results := make([]Result, 0, len(Tools))
	for _, tool := range Tools {
		results = append(results, Result{Tool: tool, Status: Check(tool)})
	}
	return results
}

// MissingRequired returns the required tools that are not installed.
func MissingRequired(results []Result) []Tool {
	var missing []Tool
	for _, r := range results {
		if r.Tool.Required && !r.Status.Installed {
			missing = append(missing, r.Tool)
		}
	}
	return missing
}
