//go:build tinygo && atsamd51

package main

import "samdtimer/targets/samd51"

func registerBoard() {
	samd51.Register()
}
