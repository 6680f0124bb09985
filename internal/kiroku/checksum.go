package kiroku

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"lukechampine.com/blake3"
)

// hashBytes computes the BLAKE3 digest of data.
// Prefers the system b3sum binary when present, matching how the rest of
// the packaging pipeline checksums artifacts; falls back to the internal
// implementation otherwise. Both produce the same 32-byte hex digest.
func hashBytes(data []byte) string {
	if hasB3sum() {
		cmd := exec.Command("b3sum")
		cmd.Stdin = bytes.NewReader(data)
		var out bytes.Buffer
		cmd.Stdout = &out
		if err := cmd.Run(); err == nil {
			fields := strings.Fields(out.String())
			if len(fields) > 0 {
				return fields[0]
			}
		}
	}

	h := blake3.New(32, nil)
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// check if b3sum is installed on system
func hasB3sum() bool {
	_, err := exec.LookPath("b3sum")
	return err == nil
}
