package main

import "kiroku/internal/kiroku"

func main() {
	kiroku.Main()
}
