package util

import (
	"fmt"
	"hash/crc32"

	"github.com/bytedance/sonic"
)

// FingerprintValue fingerprints the JSON encoding of v. Two values with the
// same encoding share a fingerprint.
func FingerprintValue(v interface{}) (string, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
}
