package reputation

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a domain with the score it should be inserted with.
type Record struct {
	Domain string
	Score  int
}

// LoadDomainList reads a known-domain list and inserts every record into t.
// Each line holds a domain and a score separated by a tab, a comma or spaces. Blank lines and lines starting with # are skipped.
func LoadDomainList(t *Index, fs fileSystem, fileName string) (n int, err error) {
	data, err := fs.ReadFile(fileName)
	if err != nil {
		return
	}

	records, err := ParseDomainList(string(data))
	if err != nil {
		err = fmt.Errorf("%v: %w", fileName, err)
		return
	}

	t.InsertAll(records)
	n = len(records)
	return
}

// ParseDomainList parses the known-domain list format accepted by LoadDomainList.
func ParseDomainList(content string) (records []Record, err error) {
	for lineNo, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == '\t' || r == ',' || r == ' '
		})
		if len(fields) != 2 {
			err = fmt.Errorf("line %d: expected domain and score, got %q", lineNo+1, line)
			return
		}

		var score int
		score, err = strconv.Atoi(fields[1])
		if err != nil {
			err = fmt.Errorf("line %d: invalid score %q", lineNo+1, fields[1])
			return
		}

		records = append(records, Record{Domain: fields[0], Score: score})
	}
	return
}
