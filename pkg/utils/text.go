package utils

import "strings"

var numberReplacer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4", "۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4", "٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	",", "", "٬", "", "_", "", " ", "",
)

// NormalizeNumber turns a spreadsheet cell like "۴,۷۵۰" or "4 750" into "4750".
// Persian and Arabic-Indic digits become ASCII and group separators are dropped.
func NormalizeNumber(input string) string {
	return numberReplacer.Replace(strings.TrimSpace(input))
}
