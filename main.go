package main

import keyreaper "github.com/keyreaper/keyreaper/cmd/keyreaper"

func main() {
	keyreaper.Execute()
}
