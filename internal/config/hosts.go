package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadHosts reads the line-oriented host list: one host per line, order
// preserved, blank lines and #-comments skipped. An empty result is an error;
// the monitor has nothing to do without targets.
func LoadHosts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hosts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%s: no hosts to monitor", path)
	}
	return hosts, nil
}
