package fcrypt

import (
	"errors"
	"fmt"
	"strings"

	"filippo.io/age"
)

func LoadPublicKey(key string) (*age.X25519Recipient, error) {
	ageRecipient, err := age.ParseX25519Recipient(key)
	if err != nil {
		return nil, fmt.Errorf("error parsing age public key='%s': %w", key, err)
	}

	return ageRecipient, nil
}

// LoadPublicKeys parses every non-blank key. At least one key is required.
func LoadPublicKeys(keys []string) ([]age.Recipient, error) {
	recipients := make([]age.Recipient, 0, len(keys))

	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		r, err := LoadPublicKey(key)
		if err != nil {
			return nil, err
		}

		recipients = append(recipients, r)
	}

	if len(recipients) == 0 {
		return nil, errors.New("no age recipients configured")
	}

	return recipients, nil
}

func LoadPrivateKey(key string) (*age.X25519Identity, error) {
	ageIdentity, err := age.ParseX25519Identity(key)
	if err != nil {
		return nil, fmt.Errorf("error parsing age private key: %w", err)
	}

	return ageIdentity, nil
}
