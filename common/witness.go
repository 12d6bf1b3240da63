package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// using certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// CheckAuthorized checks that the current invocation carries the authority
// of addr: either addr witnessed the transaction or addr is the directly
// calling contract. It panics with msg on fail.
func CheckAuthorized(addr interop.Hash160, msg string) {
	caller := runtime.GetCallingScriptHash()
	if caller.Equals(addr) {
		return
	}
	if runtime.CheckWitness(addr) {
		return
	}
	panic(msg)
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
