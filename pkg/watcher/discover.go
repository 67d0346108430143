package watcher

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsLogFile reports whether the filename looks like a client combat
// log: nwclientlog, nwclientlog.txt, nwclientlog3, nwclientlog12.txt.
func IsLogFile(name string) bool {
	lower := strings.ToLower(name)
	if !strings.HasPrefix(lower, "nwclientlog") {
		return false
	}
	rest := strings.TrimPrefix(lower, "nwclientlog")
	rest = strings.TrimSuffix(rest, ".txt")
	if rest == "" {
		return true
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FindLatestLog returns the most recently modified client log in the
// directory, or "" when none exists.
func FindLatestLog(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	type candidate struct {
		path  string
		mtime int64
	}
	var logs []candidate
	for _, e := range entries {
		if e.IsDir() || !IsLogFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		logs = append(logs, candidate{
			path:  filepath.Join(dir, e.Name()),
			mtime: info.ModTime().UnixNano(),
		})
	}
	if len(logs) == 0 {
		return ""
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].mtime > logs[j].mtime })
	return logs[0].path
}

// ResolveLogPath accepts either a log file or a logs directory and
// returns the file to tail, or "" when nothing suitable exists.
func ResolveLogPath(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		return FindLatestLog(path)
	}
	return path
}

// TailLines reads up to n trailing lines from the file. Used for
// player-name detection over the recent log tail.
func TailLines(path string, n int) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	return lines
}
