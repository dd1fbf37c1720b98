package accounts

import (
	"bufio"
	"os"
	"strings"

	"github.com/tyler-technologies/go-provision/internal/provisionerrors"
)

// ReadAccountList returns the non-blank lines of fileName, trimmed.
// Names are not validated or de-duplicated.
func ReadAccountList(fileName string) ([]string, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, provisionerrors.ErrReadAccountList{Err: err}
	}
	defer f.Close()

	names := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, provisionerrors.ErrReadAccountList{Err: err}
	}
	return names, nil
}
