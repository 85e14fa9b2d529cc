package scrape

import "strconv"

// Extension is the file extension of downloaded page images.
const Extension = ".png"

// FileName returns the download file name for a page number: the decimal
// number without padding followed by Extension.
func FileName(number int) string {
	return strconv.Itoa(number) + Extension
}
