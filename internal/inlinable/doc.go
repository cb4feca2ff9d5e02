// Package inlinable computes the canonical text of inlinable code.
//
// The canonical text of a subtree is its source with every untaken #if
// branch removed (whole lines, directives included) and every comment
// stripped, while the surviving whitespace is kept byte for byte. Two
// builds that differ only in comments or in dead configuration branches
// therefore print identical inlinable bodies.
package inlinable
