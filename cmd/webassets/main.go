package main

import (
	"ocm.software/open-component-model/webassets/cli/cmd"
)

func main() {
	cmd.Execute()
}
