package main

import "github.com/theirongolddev/tokenledger/cmd"

func main() {
	cmd.Execute()
}
