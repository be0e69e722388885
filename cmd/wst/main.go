package main

import "github.com/Tehiaohiao/wst/cmd/wst/cmd"

func main() {
	cmd.Execute()
}
