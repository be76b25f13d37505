package repo

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseListOutput parses the table printed by "yum list available":
//
//	httpd.x86_64          2.4.6-90.el7.centos          base
//
// into filenames like httpd-2.4.6-90.el7.centos.x86_64. Lines yum wrapped
// because the first column was too wide are joined back. Headers and other
// chatter are skipped. Failing to read the table, for instance on a line
// longer than the scanner buffer, is an error rather than a short list.
func ParseListOutput(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(lines) > 0 && (line[0] == ' ' || line[0] == '\t') {
			lines[len(lines)-1] += " " + strings.TrimSpace(line)
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read package list: %w", err)
	}

	var filenames []string
	for _, line := range lines {
		if filename, ok := parseListLine(line); ok {
			filenames = append(filenames, filename)
		}
	}
	return filenames, nil
}

func parseListLine(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}

	dot := strings.LastIndexByte(fields[0], '.')
	if dot <= 0 || dot == len(fields[0])-1 {
		return "", false
	}
	name, arch := fields[0][:dot], fields[0][dot+1:]

	version := fields[1]
	if version[0] < '0' || version[0] > '9' {
		return "", false
	}

	return name + "-" + version + "." + arch, true
}
