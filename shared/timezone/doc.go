// Package timezone pins every timestamp the service produces or parses to the
// configured application location (APP_TIMEZONE, an IANA name such as
// "Asia/Ho_Chi_Minh"). It falls back to UTC when the name is missing or unknown.
//
//	now := timezone.Now()
//	start, err := timezone.Parse(time.RFC3339, "2025-03-01T08:00:00+07:00")
//	label := timezone.Format(start, "02 Jan 2006 15:04")
package timezone
