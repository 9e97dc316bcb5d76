package main

import "github.com/comitanigiacomo/kanso-saturation/internal/cmd"

func main() {
	cmd.Execute()
}
