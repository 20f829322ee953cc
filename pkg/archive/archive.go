// Package archive stores copies of transmitted raw messages for audit and
// debugging. Archiving is best effort; a failed store never fails a send.
package archive

import "context"

// Store persists one raw message blob under a key.
type Store interface {
	Store(ctx context.Context, key string, data []byte) error
}
