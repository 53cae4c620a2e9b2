package main

import "github.com/datashield/dsbuild/cmd/dsbuild/internal"

func main() {
	internal.Execute()
}
