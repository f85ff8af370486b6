package main

import "github.com/theirongolddev/paydash/cmd"

func main() {
	cmd.Execute()
}
