package viewmodel

import "strconv"

// FormatGB renders a memory size with the shortest exact decimal, so whole
// values print without a fraction ("2 GB", "0 GB", "1.8 GB").
func FormatGB(gb float64) string {
	return strconv.FormatFloat(gb, 'f', -1, 64) + " GB"
}
