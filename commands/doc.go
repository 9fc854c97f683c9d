// Package commands models the primitive operations of the scoreboard machine.
//
// Every operation is a Minecraft 1.8 command: score writes and arithmetic on
// named objectives (`scoreboard players ...`), re-targeted execution
// (`execute`), and block placement (`fill`) used to power program points.
// Commands are held in command blocks, which may report their results back to
// a score through CommandStats.
package commands
