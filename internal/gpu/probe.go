package gpu

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const cpuOnlyName = "CPU Only"

// Device is one accelerator as reported by nvidia-smi. Memory is in MiB.
type Device struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	TotalMemory int64  `json:"total_memory_mb"`
	UsedMemory  int64  `json:"used_memory_mb"`
	FreeMemory  int64  `json:"free_memory_mb"`
	Utilization int    `json:"utilization_percent"`
}

// Status summarizes the accelerators. Name is the first device's name, or
// "CPU Only" when none is available.
type Status struct {
	Available bool     `json:"available"`
	Name      string   `json:"name"`
	Message   string   `json:"message,omitempty"`
	Devices   []Device `json:"devices"`
}

var queryArgs = []string{
	"--query-gpu=index,name,memory.total,memory.used,memory.free,utilization.gpu",
	"--format=csv,noheader,nounits",
}

func (p *implProber) Status(ctx context.Context) Status {
	if _, err := p.executor.LookPath(p.binary); err != nil {
		return cpuOnly("nvidia-smi not found")
	}

	out, err := p.executor.Execute(ctx, p.binary, queryArgs...)
	if err != nil {
		p.logger.Warn(ctx, "GPU probe failed: %v", err)
		return cpuOnly("GPU probe failed")
	}

	devices, err := parseDevices(out)
	if err != nil {
		p.logger.Warn(ctx, "Cannot parse nvidia-smi output: %v", err)
		return cpuOnly("GPU probe failed")
	}
	if len(devices) == 0 {
		return cpuOnly("no GPU detected")
	}
	return Status{Available: true, Name: devices[0].Name, Devices: devices}
}

func cpuOnly(msg string) Status {
	return Status{Name: cpuOnlyName, Message: msg, Devices: []Device{}}
}

// parseDevices reads the noheader,nounits CSV of the device query.
func parseDevices(out string) ([]Device, error) {
	var devices []Device
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			return nil, fmt.Errorf("unexpected line %q", line)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		var (
			d   = Device{Name: fields[1]}
			err error
		)
		if d.Index, err = strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		if d.TotalMemory, err = parseMiB(fields[2]); err != nil {
			return nil, fmt.Errorf("memory.total: %w", err)
		}
		if d.UsedMemory, err = parseMiB(fields[3]); err != nil {
			return nil, fmt.Errorf("memory.used: %w", err)
		}
		if d.FreeMemory, err = parseMiB(fields[4]); err != nil {
			return nil, fmt.Errorf("memory.free: %w", err)
		}
		// some boards report [N/A] for utilization
		if u, err := strconv.Atoi(fields[5]); err == nil {
			d.Utilization = u
		}
		devices = append(devices, d)
	}
	return devices, nil
}

func parseMiB(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
