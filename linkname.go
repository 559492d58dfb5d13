package seqlock

import "unsafe"

type _ unsafe.Pointer

//go:linkname procyield runtime.procyield
//go:noescape
func procyield(cycles uint32)
