package checks

import (
	"fmt"
)

// Pack is the read side of an expansion pack.
type Pack interface {
	Path() string
	Names() []string
	ReadFile(name string) ([]byte, error)
}

// ArchiveReport is the result of reading every expansion pack entry.
type ArchiveReport struct {
	Path       string   `json:"path"`
	Entries    int      `json:"entries"`
	Bytes      int64    `json:"bytes"`
	Unreadable []string `json:"unreadable"`
}

// CheckArchive decompresses every entry of pack. Entries failing to read
// (bad checksum, unsupported method) are reported, not returned as errors.
func CheckArchive(pack Pack) (*ArchiveReport, error) {
	if pack == nil {
		return nil, fmt.Errorf("no expansion pack configured")
	}

	names := pack.Names()
	report := &ArchiveReport{
		Path:       pack.Path(),
		Entries:    len(names),
		Unreadable: []string{},
	}
	for _, name := range names {
		data, err := pack.ReadFile(name)
		if err != nil {
			report.Unreadable = append(report.Unreadable, name)
			continue
		}
		report.Bytes += int64(len(data))
	}
	return report, nil
}
