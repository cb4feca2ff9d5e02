// Package ast holds the arena-owned syntax tree: declarations with their
// members and bodies, body nodes, and conditional compilation blocks.
//
// Everything is addressed by 1-based IDs (0 means none) into the arenas of
// a Builder, so requests and caches can hold IDs instead of pointers.
package ast
