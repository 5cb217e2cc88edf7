package main

import (
	"github/universalwallet/wallet-bridge/cmd"
)

func main() {
	cmd.Execute()
}
