package main

import "github.com/KaramelBytes/dasbor/cmd"

func main() {
	cmd.Execute()
}
