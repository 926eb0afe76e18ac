// Package utils holds the small helpers shared by the folco packages:
// console formatting, the progress bar, downloads and generic math.
package utils

// Contains returns true if the value is found in the collection.
func Contains[T comparable](slice []T, value T) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
