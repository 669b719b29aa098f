package cmd

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/shenwei356/util/pathutil"
)

// expandPath resolves a leading "~" to the invoking user's home
// directory, the way the teacher's CLI lets every file flag accept
// "~/..." paths.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// requireFile expands path and fails fast with a clear message if it
// is missing, ported from unikmer/cmd/util.go's checkFiles using
// shenwei356/util/pathutil.Exists.
func requireFile(path string) (string, error) {
	path = expandPath(path)
	ok, err := pathutil.Exists(path)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !ok {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	return path, nil
}
