package fcrypt

import (
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
)

// Ext is the suffix given to encrypted files.
const Ext = ".age"

// EncryptInPlace encrypts path into <path>.age and removes the plaintext file
// without confirmation.
func EncryptInPlace(path string, recipients ...age.Recipient) error {
	return EncryptFile(path, path+Ext, recipients...)
}

// DecryptInPlace decrypts <name>.age into <name> and removes the encrypted
// file once decryption succeeded.
func DecryptInPlace(path string, identity age.Identity) error {
	if !strings.HasSuffix(path, Ext) {
		return fmt.Errorf("file %s does not have %s extension", path, Ext)
	}

	outputPath := strings.TrimSuffix(path, Ext)
	if err := DecryptFile(path, outputPath, identity); err != nil {
		return err
	}

	return os.Remove(path)
}
