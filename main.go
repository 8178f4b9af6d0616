package main

import "github.com/CryptYlliON/gelato-network/cmd"

func main() {
	cmd.Execute()
}
