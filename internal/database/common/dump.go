package common

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

// stderrTailLimit bounds how much dump-tool stderr is carried in errors.
const stderrTailLimit = 2048

// RunDump invokes an external dump tool with an argument array and streams
// its stdout to destPath. The tool name comes from the capability
// allow-list and the arguments are passed verbatim to the OS — nothing is
// interpreted by a shell, so hostile DSNs or paths stay inert single
// arguments. A non-zero exit removes the partial file.
func RunDump(ctx context.Context, id dbcapabilities.DatabaseID, tool string, args []string, destPath string) error {
	if destPath == "" {
		return adapter.NewInvalidInputError("backup_path", "must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return adapter.NewBackupError(id, tool, "", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return adapter.NewBackupError(id, tool, "", err)
	}
	defer out.Close()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(destPath)
		// A deadline kill surfaces as "signal: killed"; report the
		// context error so it classifies as a timeout.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return adapter.NewBackupError(id, tool, stderrTail(stderr.Bytes()), err)
	}
	return nil
}

func stderrTail(b []byte) string {
	if len(b) > stderrTailLimit {
		b = b[len(b)-stderrTailLimit:]
	}
	return string(bytes.TrimSpace(b))
}
