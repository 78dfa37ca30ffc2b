// Package logging provides concrete implementations of the sflink.Logger interface.
package logging
