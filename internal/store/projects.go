package store

import (
	"path/filepath"
	"strings"
)

// DecodeDirName converts a Claude Code project directory name to a display
// name and decoded filesystem path. The encoding replaces "/" with "-", so
// "-Users-evan-myproject" decodes to "/Users/evan/myproject". The encoding
// is lossy for paths containing "-"; the decoded value is best-effort and
// superseded by the cwd recorded inside session files.
func DecodeDirName(dirName string) (displayName, fullPath string) {
	if dirName == "" || dirName == "-" {
		return "~", ""
	}

	if strings.HasPrefix(dirName, "-") {
		fullPath = "/" + strings.ReplaceAll(dirName[1:], "-", "/")
	} else {
		fullPath = strings.ReplaceAll(dirName, "-", "/")
	}

	return filepath.Base(fullPath), fullPath
}

// EncodeDirName converts a filesystem path to the store's directory name.
func EncodeDirName(path string) string {
	return strings.ReplaceAll(path, string(filepath.Separator), "-")
}
