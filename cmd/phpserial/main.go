package main

import "github.com/Oscurlo/PHP-Serial/cmd"

func main() {
	cmd.Execute()
}
