package common

import (
	"fmt"
	"io/ioutil"
	"os"
)

// WriteFileAtomic writes newBytes to filePath, preserving the
// previous contents at filePath+".bak" on overwrite, so a crash
// mid-write never loses both the old and new config.
func WriteFileAtomic(filePath string, newBytes []byte, mode os.FileMode) error {
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		fileBytes, err := ioutil.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filePath, err)
		}
		if err := ioutil.WriteFile(filePath+".bak", fileBytes, mode); err != nil {
			return fmt.Errorf("could not write file %v: %v", filePath+".bak", err)
		}
	}
	if err := ioutil.WriteFile(filePath+".new", newBytes, mode); err != nil {
		return fmt.Errorf("could not write file %v: %v", filePath+".new", err)
	}
	return os.Rename(filePath+".new", filePath)
}

// InitialConfig is the default configuration produced by the init
// subcommand.
const InitialConfig = `# minerd configuration
network:
  id: main
consensus:
  blockIntervalSec: 10
  totalDelegateNum: 11
miner:
  blockMaxSize: 4194304
  blockPrioritySize: 51200
  blockMinSize: 0
  blockSizeForBurn: 50
  genBlockForce: false
`

// WriteInitialConfig writes the initial config file to the filesystem.
func WriteInitialConfig(filePath string) error {
	return WriteFileAtomic(filePath, []byte(InitialConfig), 0600)
}
