//go:build tinygo && atsamd21

package main

import "samdtimer/targets/samd21"

func registerBoard() {
	samd21.Register()
}
