package main

import (
	"os"

	"github.com/IyanuOluwaJesuloba/coralswap-core/cmd/pairsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
