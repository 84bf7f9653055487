// Package report renders snapshots and inventories for terminal output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/hiveden/hwsnap/internal/hw"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
	}
}

// Snapshot writes snap in the requested format.
func Snapshot(w io.Writer, format Format, snap *hw.Snapshot) error {
	if format == FormatText {
		return snapshotText(w, snap)
	}
	return encode(w, format, snap)
}

// Hardware writes a hardware inventory in the requested format.
func Hardware(w io.Writer, format Format, info *hw.HardwareInfo) error {
	if format == FormatText {
		return hardwareText(w, info)
	}
	return encode(w, format, info)
}

// System writes host identity in the requested format.
func System(w io.Writer, format Format, info *hw.SystemInfo) error {
	if format == FormatText {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Hostname:\t%s\n", info.Hostname)
		fmt.Fprintf(tw, "OS:\t%s\n", info.OS)
		fmt.Fprintf(tw, "Distro:\t%s %s\n", info.Distro, info.Version)
		fmt.Fprintf(tw, "Kernel:\t%s\n", info.KernelVersion)
		fmt.Fprintf(tw, "Architecture:\t%s\n", info.Architecture)
		return tw.Flush()
	}
	return encode(w, format, info)
}

func encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func snapshotText(w io.Writer, snap *hw.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	cpu := snap.CPU
	fmt.Fprintf(tw, "CPU:\t%s\n", orUnknown(cpu.BrandString()))
	fmt.Fprintf(tw, "  Vendor:\t%s\n", orUnknown(cpu.VendorString()))
	fmt.Fprintf(tw, "  Family/Model:\t%d/%d\n", cpu.Family, cpu.Model)
	fmt.Fprintf(tw, "  Cores:\t%d\n", cpu.Cores)
	if cpu.FrequencyMHz > 0 {
		fmt.Fprintf(tw, "  Frequency:\t%d MHz\n", cpu.FrequencyMHz)
	} else {
		fmt.Fprintf(tw, "  Frequency:\tunknown\n")
	}
	fmt.Fprintf(tw, "  Features:\t%s\n", featureList(cpu.Features))

	fmt.Fprintf(tw, "RAM:\t%s free of %s\t(%d%% in use)\n",
		megabytes(snap.RAM.FreeMB), megabytes(snap.RAM.TotalMB), snap.RAM.InUse)
	fmt.Fprintf(tw, "Disk %s:\t%s free of %s\t(%d%% in use)\n",
		snap.HDD.Path, megabytes(snap.HDD.FreeMB), megabytes(snap.HDD.TotalMB), snap.HDD.InUse)

	return tw.Flush()
}

func hardwareText(w io.Writer, info *hw.HardwareInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Processors:\t%d (%d cores)\n", len(info.Processors), info.TotalCores)
	for _, p := range info.Processors {
		fmt.Fprintf(tw, "  #%d:\t%s %s, %d cores\n", p.ID, p.Vendor, p.Model, p.Cores)
	}

	fmt.Fprintf(tw, "Memory:\t%s physical, %s usable\n",
		signedBytes(info.Memory.TotalPhysicalBytes), signedBytes(info.Memory.TotalUsableBytes))

	fmt.Fprintf(tw, "Disks:\t%d\n", len(info.Disks))
	for _, d := range info.Disks {
		fmt.Fprintf(tw, "  %s:\t%s %s\t%s\t%s\n", d.Name, d.Vendor, d.Model, d.DriveType, humanize.IBytes(d.SizeBytes))
	}

	return tw.Flush()
}

func featureList(f hw.Features) string {
	var names []string
	for _, feat := range []struct {
		name string
		on   bool
	}{
		{"mmx", f.MMX},
		{"sse", f.SSE},
		{"sse2", f.SSE2},
		{"sse3", f.SSE3},
		{"sse4.1", f.SSE41},
		{"sse4.2", f.SSE42},
		{"avx", f.AVX},
	} {
		if feat.on {
			names = append(names, feat.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

func megabytes(mb uint64) string {
	return humanize.IBytes(mb << 20)
}

// signedBytes formats ghw byte counts, which use -1 for unknown.
func signedBytes(n int64) string {
	if n < 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(n))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
