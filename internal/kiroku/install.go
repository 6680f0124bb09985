package kiroku

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// installScript persists the rendered script body to path and marks it
// executable. The write is a full truncate-and-write under an exclusive
// flock: concurrent runs targeting the same destination serialize, and
// repeated runs never accumulate duplicate script bodies. A BLAKE3 digest
// sidecar (<path>.b3) is written alongside so the packaging pipeline can
// verify the script it later executes.
func installScript(path string, body []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create script directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", path, err)
	}
	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// O_CREATE mode is filtered by umask; chmod to the exact requested bits.
	if err := f.Chmod(mode); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}

	digest := hashBytes(body)
	sidecar := path + ".b3"
	if err := os.WriteFile(sidecar, []byte(digest+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write digest sidecar %s: %w", sidecar, err)
	}

	debugf("Installed %s (mode %o, b3 %s)\n", path, mode, digest)
	return nil
}
