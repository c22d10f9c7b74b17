package main

import "github.com/terraconstructs/tasklists/cmd"

func main() {
	cmd.Execute()
}
