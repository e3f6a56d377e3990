// Package booter hands control to the next boot program.
package booter

import "go.uber.org/zap"

// Booter is an interface that defines custom boot types. Implementations load
// a program and transfer control to it; Boot only returns if that failed or
// the program exited.
type Booter interface {
	Boot() error
	TypeName() string
}

// NullBooter is a dummy booter that does nothing. It is used when there is
// nothing to boot, e.g. when the operator asked for a reboot.
type NullBooter struct {
	Log *zap.Logger
}

func (nb *NullBooter) TypeName() string {
	return "null"
}

func (nb *NullBooter) Boot() error {
	if nb.Log != nil {
		nb.Log.Debug("null booter does nothing")
	}
	return nil
}

// ChainBooter boots a fixed target through a Chainloader.
type ChainBooter struct {
	Loader *Chainloader
	Target Target
}

// TypeName returns the name of the booter type
func (cb *ChainBooter) TypeName() string {
	return "chainload"
}

// Boot chainloads the target.
func (cb *ChainBooter) Boot() error {
	return cb.Loader.Chainload(cb.Target)
}
