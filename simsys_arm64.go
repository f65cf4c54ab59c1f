//go:build arm64
// +build arm64

package pngembed

import "golang.org/x/sys/cpu"

// hasWideLoads returns true if the CPU supports Advanced SIMD.
func hasWideLoads() bool {
	return cpu.ARM64.HasASIMD
}
