package coverage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/cover"
)

// DefaultOmit lists the file patterns left out of reports. Patterns are
// matched against module relative paths; "dir/*" also covers subdirectories
// and patterns without a slash are matched against the base name.
var DefaultOmit = []string{"*_test.go", "test/*", "lib/*", "include/*", "bin/*", "web/webtest/*"}

// FileSummary is the statement coverage of one source file.
type FileSummary struct {
	Name       string `json:"name"`
	Statements int64  `json:"statements"`
	Missed     int64  `json:"missed"`
}

func (f FileSummary) Covered() int64 { return f.Statements - f.Missed }

// Summary aggregates FileSummary entries sorted by name.
type Summary struct {
	Files      []FileSummary `json:"files"`
	Statements int64         `json:"statements"`
	Missed     int64         `json:"missed"`
}

// Percent returns the covered share of statements, 100 when there are none.
func (s *Summary) Percent() float64 {
	if s.Statements == 0 {
		return 100
	}
	return float64(s.Statements-s.Missed) * 100 / float64(s.Statements)
}

// ModulePath reads the module path declared by the go.mod in dir.
func ModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "read go.mod")
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", errors.New("go.mod declares no module path")
	}
	return mod, nil
}

// RelName strips the module prefix from a profile file name.
func RelName(fileName, modulePath string) string {
	if modulePath == "" {
		return fileName
	}
	return strings.TrimPrefix(fileName, modulePath+"/")
}

// Omitted reports whether the module relative name matches any pattern.
func Omitted(name string, patterns []string) bool {
	for _, p := range patterns {
		if !strings.Contains(p, "/") {
			if ok, _ := path.Match(p, path.Base(name)); ok {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, name); ok {
			return true
		}
		if strings.HasSuffix(p, "/*") && strings.HasPrefix(name, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}

// Filter drops the profiles of omitted files.
func Filter(profiles []*cover.Profile, modulePath string, omit []string) []*cover.Profile {
	out := make([]*cover.Profile, 0, len(profiles))
	for _, p := range profiles {
		if Omitted(RelName(p.FileName, modulePath), omit) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Summarize counts statements and missed statements per file.
func Summarize(profiles []*cover.Profile, modulePath string) *Summary {
	s := &Summary{}
	for _, p := range profiles {
		f := FileSummary{Name: RelName(p.FileName, modulePath)}
		for _, b := range p.Blocks {
			f.Statements += int64(b.NumStmt)
			if b.Count == 0 {
				f.Missed += int64(b.NumStmt)
			}
		}
		s.Files = append(s.Files, f)
		s.Statements += f.Statements
		s.Missed += f.Missed
	}
	sort.Slice(s.Files, func(i, j int) bool { return s.Files[i].Name < s.Files[j].Name })
	return s
}

// WriteProfile writes profiles in the format read by cover.ParseProfiles and go tool cover.
func WriteProfile(w io.Writer, profiles []*cover.Profile) error {
	bw := bufio.NewWriter(w)
	mode := "set"
	if len(profiles) > 0 && profiles[0].Mode != "" {
		mode = profiles[0].Mode
	}
	fmt.Fprintf(bw, "mode: %s\n", mode)
	for _, p := range profiles {
		for _, b := range p.Blocks {
			fmt.Fprintf(bw, "%s:%d.%d,%d.%d %d %d\n",
				p.FileName, b.StartLine, b.StartCol, b.EndLine, b.EndCol, b.NumStmt, b.Count)
		}
	}
	return bw.Flush()
}
