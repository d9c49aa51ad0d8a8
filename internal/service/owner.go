package service

import "regexp"

// Storage download URLs embed the object path URL-encoded, so the owning
// user of a purchase file shows up as users%2F<id>%2Fpurchases inside
// xeroxDetails.fileUrl. Flat-collection documents carry no owner field, so
// this is the only place the owner can be recovered from.
var ownerIDPattern = regexp.MustCompile(`users%2F([a-zA-Z0-9_-]+)%2Fpurchases`)

// OwnerIDFromFileURL extracts the owning user ID embedded in a storage
// download URL. Returns "" when the URL does not match the expected shape;
// callers report that as an absent owner, not an error.
func OwnerIDFromFileURL(fileURL string) string {
	if fileURL == "" {
		return ""
	}
	m := ownerIDPattern.FindStringSubmatch(fileURL)
	if m == nil {
		return ""
	}
	return m[1]
}
