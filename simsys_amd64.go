//go:build amd64
// +build amd64

package pngembed

import "golang.org/x/sys/cpu"

// hasWideLoads returns true if the CPU supports AVX2 instructions.
func hasWideLoads() bool {
	return cpu.X86.HasAVX2
}
