// Package pty spawns a child process attached to a pseudo-terminal and
// hands back a handle that controls it: window size, echo, signals,
// escalated termination, and a splice loop that bridges the handle to a
// real user terminal.
//
// The package only targets POSIX hosts. There is no Windows/ConPTY
// variant, no expect-style output matching, and a handle controls exactly
// one child for its lifetime.
package pty
