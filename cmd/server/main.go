package main

import "obramat/go_backend/internal/app"

func main() {
	app.Run()
}
