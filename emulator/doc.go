// Package emulator runs an assembled program without a game server.
//
// Items are placed along a line of command blocks, one power slot per label.
// A tick runs the memory controllers and every segment powered at its start.
package emulator
