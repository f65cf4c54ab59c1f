//go:build !amd64 && !arm64
// +build !amd64,!arm64

package pngembed

func hasWideLoads() bool {
	return false
}
