//go:build !linux

package routectl

func NewNetlink() (*Controller, error) {
	return nil, ErrNotSupported
}
