//go:build tinygo

package main

import (
	"racedash/app"
	"racedash/hal"
)

func main() {
	app.Run(hal.New())
}
