package main

import "github.com/guolab/copperline/cmd"

func main() {
	cmd.Execute()
}
