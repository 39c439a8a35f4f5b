package meta

import (
	"github.com/minio/highwayhash"
)

var key = []byte("FLOWMAP0FLOWMAP0FLOWMAP0FLOWMAP0")

// Fingerprint returns a stable 64-bit content fingerprint of workflow
// source, used for log correlation and duplicate detection while scanning.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
