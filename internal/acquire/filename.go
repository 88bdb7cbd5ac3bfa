// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import "strings"

// unsafeChars replaces characters that are not allowed in filenames on
// common filesystems.
var unsafeChars = strings.NewReplacer(
	"/", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Filename returns the PDF filename for a paper title: every character in
// / : * ? " < > | becomes an underscore and ".pdf" is appended.
func Filename(title string) string {
	return unsafeChars.Replace(title) + ".pdf"
}
