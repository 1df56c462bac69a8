package fcrypt

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// EncryptReader encrypts data from r and writes the armored result to w.
func EncryptReader(r io.Reader, w io.Writer, recipients ...age.Recipient) error {
	armorWriter := armor.NewWriter(w)
	defer func() {
		_ = armorWriter.Close()
	}()

	encryptor, err := age.Encrypt(armorWriter, recipients...)
	if err != nil {
		return fmt.Errorf("failed to create encryptor: %w", err)
	}
	defer func() {
		_ = encryptor.Close()
	}()

	_, err = io.Copy(encryptor, r)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	// Close in reverse order so the armor footer follows the final chunk.
	if err = encryptor.Close(); err != nil {
		_ = armorWriter.Close()
		return fmt.Errorf("failed to finalize encryption: %w", err)
	}
	if err = armorWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalize armor: %w", err)
	}

	return nil
}

// EncryptFile encrypts inputPath into outputPath and removes inputPath.
func EncryptFile(inputPath, outputPath string, recipients ...age.Recipient) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inputFile.Close()
	}()

	outputFile, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		_ = outputFile.Close()
	}()

	if err := EncryptReader(inputFile, outputFile, recipients...); err != nil {
		return err
	}

	if err = os.Remove(inputPath); err != nil {
		return err
	}

	return nil
}

// DecryptReader decrypts armored data from r and writes the plaintext to w.
func DecryptReader(r io.Reader, w io.Writer, identity age.Identity) error {
	armorReader := armor.NewReader(r)

	decryptor, err := age.Decrypt(armorReader, identity)
	if err != nil {
		return fmt.Errorf("failed to create decryptor: %w", err)
	}

	_, err = io.Copy(w, decryptor)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	return nil
}

// DecryptToBytes decrypts the file at path and returns the plaintext.
func DecryptToBytes(path string, identity age.Identity) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open encrypted file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var buf bytes.Buffer
	if err := DecryptReader(file, &buf, identity); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecryptFile decrypts inputPath into outputPath, leaving inputPath in place.
func DecryptFile(inputPath, outputPath string, identity age.Identity) error {
	plaintext, err := DecryptToBytes(inputPath, identity)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
