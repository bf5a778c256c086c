package vpathrepo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// hashFileContent calculates the SHA-256 hash of a file's content through
// the repository's afero.Fs, used by Repository.Digest to report whether a
// mapped file's content has changed since it was last inspected. Grounded
// on frango's calculateFileHash, generalized from os.Open to afero so it
// works against both the real filesystem and a MemMapFs in tests.
func hashFileContent(fs afero.Fs, fsPath string) (string, error) {
	f, err := fs.Open(fsPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", fsPath, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read file %q for hashing: %w", fsPath, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
