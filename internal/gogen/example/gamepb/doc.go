// Package gamepb is the output of kiwic for game.kiwi. It is checked in so
// the emitted code is compiled and tested alongside the runtime codec.
package gamepb

//go:generate go run kiwi/cmd/kiwic build --out . --package gamepb game.kiwi
