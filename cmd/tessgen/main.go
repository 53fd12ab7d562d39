package main

import "github.com/ocrbind/tessgen/cmd/tessgen/internal"

func main() {
	internal.Execute()
}
