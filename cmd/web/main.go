package main

import "mediavault/internal/app"

func main() {
	app.Run()
}
