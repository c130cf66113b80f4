// Package timezone keeps the application location used for audit timestamps
// and token issue times.
//
//	if err := timezone.Init(cfg.App.Timezone); err != nil { ... }
//	now := timezone.Now()
//	stamp := timezone.Format(user.LastLogin, time.RFC3339)
//
// Booking dates are calendar dates and never pass through this package.
package timezone
