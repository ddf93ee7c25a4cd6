package main

import (
	"github.com/masmgr/gittree-go/cmd"
)

func main() {
	cmd.Run()
}
