// internal/store/migrate.go
package store

import "github.com/tamzrod/kbconv/internal/layout"

// migrateV1 carries the v1 serial settings into a fresh current image.
// Fields v1 did not have take their defaults.
func migrateV1(old layout.Image) layout.Image {
	next := layout.Defaults()

	// firmware 00.00.01 wrote its default baud through a 16-bit put,
	// so a stored rate outside the allow-list means "never configured".
	if baud := old.Get(layout.FieldHostBaud); layout.AllowedBaud(baud) {
		next.Put(layout.FieldHostBaud, baud)
	}
	next.Put(layout.FieldCharDelay, old.Get(layout.FieldCharDelay))
	next.Put(layout.FieldLineDelay, old.Get(layout.FieldLineDelay))
	if old.Get(layout.FieldXonXoff) != 0 {
		next.Put(layout.FieldXonXoff, 1)
	}

	next.Seal()
	return next
}
