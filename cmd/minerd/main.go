package main

import (
	"github.com/dpos-core/minercore/cmd/minerd/cmd"
)

func main() {
	cmd.Execute()
}
