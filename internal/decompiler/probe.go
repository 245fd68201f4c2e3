package decompiler

import "os/exec"

type Capability struct {
	Command   string `json:"command"`
	Resolved  string `json:"resolved,omitempty"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func Probe(command string) Capability {
	return ProbeWithLookPath(command, exec.LookPath)
}

func ProbeWithLookPath(command string, lookPath func(file string) (string, error)) Capability {
	capability := Capability{Command: command}
	if command == "" {
		capability.Reason = "command_not_configured"
		return capability
	}
	resolved, err := lookPath(command)
	if err != nil {
		capability.Reason = "command_not_found"
		return capability
	}
	capability.Available = true
	capability.Resolved = resolved
	return capability
}
