// Package widget lives in a directory whose path does not end in its name.
package widget

type Part struct {
	SKU string
}
