package installer

import (
	"os"

	"github.com/mitchellh/go-ps"

	"github.com/flowd-dev/flowd-installer/internal/config"
)

// isDaemonRunning reports whether a flowd process other than the current one
// is live on this host. Replacing the binary under a running daemon would
// leave it executing a deleted file.
func isDaemonRunning() (bool, error) {
	processList, err := ps.Processes()
	if err != nil {
		return false, err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == config.BinaryName {
			return true, nil
		}
	}

	return false, nil
}
